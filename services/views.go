package services

import (
	"fmt"
	"sort"

	"playstore-insights/models"
)

// The views below are pure functions of (dataset, parameters). They never
// mutate data and are safe to call concurrently.

// CategoryCounts counts apps per category. An empty selection means every
// category. Rows without a category are not counted. The result is ordered
// by count descending; ties are ordered by label, which callers should not
// rely on.
func CategoryCounts(data *models.Dataset, categories models.Selection) []models.CategoryCount {
	counts := make(map[string]int)
	data.Each(func(_ int, r models.AppRecord) {
		if !r.Category.Valid || !categories.MatchAll(r.Category.String) {
			return
		}
		counts[r.Category.String]++
	})

	out := make([]models.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, models.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// RatingsInRange returns (rating, reviews) for rows whose rating lies in
// [minRating, maxRating]. Rows without a rating are skipped. min > max
// yields an empty result.
func RatingsInRange(data *models.Dataset, minRating, maxRating float64) []models.RatingPoint {
	out := []models.RatingPoint{}
	data.Each(func(_ int, r models.AppRecord) {
		if !r.Rating.Valid || r.Rating.Float64 < minRating || r.Rating.Float64 > maxRating {
			return
		}
		out = append(out, models.RatingPoint{Rating: r.Rating.Float64, Reviews: r.Reviews})
	})
	return out
}

// InstallsByCategory sums installs per selected category over rows whose
// install count lies in [minInstalls, maxInstalls].
//
// Unlike CategoryCounts, an empty selection selects nothing and the result
// is empty.
func InstallsByCategory(data *models.Dataset, categories models.Selection, minInstalls, maxInstalls int64) []models.CategoryInstalls {
	sums := make(map[string]int64)
	data.Each(func(_ int, r models.AppRecord) {
		if !r.Category.Valid || !categories.MatchSelected(r.Category.String) {
			return
		}
		if !r.Installs.Valid || r.Installs.Int64 < minInstalls || r.Installs.Int64 > maxInstalls {
			return
		}
		sums[r.Category.String] += r.Installs.Int64
	})

	out := make([]models.CategoryInstalls, 0, len(sums))
	for c, total := range sums {
		out = append(out, models.CategoryInstalls{Category: c, TotalInstalls: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// AvgRatingByContentRating averages ratings per content-rating bucket. An
// empty selection means every bucket. Missing ratings count in neither the
// sum nor the denominator, and buckets with no rating at all are omitted.
func AvgRatingByContentRating(data *models.Dataset, contentRatings models.Selection) []models.ContentRatingMean {
	type acc struct {
		sum float64
		n   int
	}
	buckets := make(map[string]*acc)
	data.Each(func(_ int, r models.AppRecord) {
		if !r.ContentRating.Valid || !r.Rating.Valid || !contentRatings.MatchAll(r.ContentRating.String) {
			return
		}
		a, ok := buckets[r.ContentRating.String]
		if !ok {
			a = &acc{}
			buckets[r.ContentRating.String] = a
		}
		a.sum += r.Rating.Float64
		a.n++
	})

	out := make([]models.ContentRatingMean, 0, len(buckets))
	for cr, a := range buckets {
		out = append(out, models.ContentRatingMean{ContentRating: cr, MeanRating: a.sum / float64(a.n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentRating < out[j].ContentRating })
	return out
}

// SizesInRange returns the sizes in megabytes lying in [minSize, maxSize],
// in source order. Binning is left to the caller.
func SizesInRange(data *models.Dataset, minSize, maxSize float64) []float64 {
	out := []float64{}
	data.Each(func(_ int, r models.AppRecord) {
		if r.SizeMB.Valid && r.SizeMB.Float64 >= minSize && r.SizeMB.Float64 <= maxSize {
			out = append(out, r.SizeMB.Float64)
		}
	})
	return out
}

// TopNByReviews returns the n apps with the most reviews, descending. Equal
// counts keep source order. Rows without a review count are never selected.
func TopNByReviews(data *models.Dataset, n int) ([]models.AppReviews, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: n must be >= 0, got %d", ErrInvalidArgument, n)
	}

	candidates := []models.AppReviews{}
	data.Each(func(_ int, r models.AppRecord) {
		if r.Reviews.Valid {
			candidates = append(candidates, models.AppReviews{App: r.App.String, Reviews: r.Reviews.Int64})
		}
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Reviews > candidates[j].Reviews
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// Bounds reports the observed value ranges the dashboard uses as default
// filter limits.
func Bounds(data *models.Dataset) models.Bounds {
	var b models.Bounds
	data.Each(func(_ int, r models.AppRecord) {
		if r.Rating.Valid {
			if !b.MinRating.Valid || r.Rating.Float64 < b.MinRating.Float64 {
				b.MinRating.Float64, b.MinRating.Valid = r.Rating.Float64, true
			}
			if !b.MaxRating.Valid || r.Rating.Float64 > b.MaxRating.Float64 {
				b.MaxRating.Float64, b.MaxRating.Valid = r.Rating.Float64, true
			}
		}
		if r.Installs.Valid && (!b.MaxInstalls.Valid || r.Installs.Int64 > b.MaxInstalls.Int64) {
			b.MaxInstalls.Int64, b.MaxInstalls.Valid = r.Installs.Int64, true
		}
		if r.SizeMB.Valid && (!b.MaxSizeMB.Valid || r.SizeMB.Float64 > b.MaxSizeMB.Float64) {
			b.MaxSizeMB.Float64, b.MaxSizeMB.Valid = r.SizeMB.Float64, true
		}
	})
	return b
}
