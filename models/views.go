package models

import "database/sql"

// CategoryCount is one row of the category distribution panel.
type CategoryCount struct {
	Category string
	Count    int
}

// RatingPoint is one (rating, reviews) scatter point.
type RatingPoint struct {
	Rating  float64
	Reviews sql.NullInt64
}

// CategoryInstalls is the summed install count for one category.
type CategoryInstalls struct {
	Category      string
	TotalInstalls int64
}

// ContentRatingMean is the mean rating for one content-rating bucket.
type ContentRatingMean struct {
	ContentRating string
	MeanRating    float64
}

// AppReviews is one row of the top-N by reviews table.
type AppReviews struct {
	App     string
	Reviews int64
}

// Bounds holds the observed ranges used as default filter limits.
// A bound is invalid when no row carries a value for its column.
type Bounds struct {
	MinRating   sql.NullFloat64
	MaxRating   sql.NullFloat64
	MaxInstalls sql.NullInt64
	MaxSizeMB   sql.NullFloat64
}

// DashboardQuery carries the user-chosen parameters of every panel.
type DashboardQuery struct {
	Categories        Selection
	MinRating         float64
	MaxRating         float64
	InstallCategories Selection
	MinInstalls       int64
	MaxInstalls       int64
	ContentRatings    Selection
	MinSizeMB         float64
	MaxSizeMB         float64
	TopN              int
}

// DashboardReport holds the derived tables of every panel.
type DashboardReport struct {
	TotalApps          int
	CategoryCounts     []CategoryCount
	RatingPoints       []RatingPoint
	InstallsByCategory []CategoryInstalls
	AvgRatingByContent []ContentRatingMean
	Sizes              []float64
	TopByReviews       []AppReviews
	Query              DashboardQuery
}
