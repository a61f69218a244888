package services

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"playstore-insights/models"
	"playstore-insights/storage"
	"playstore-insights/utils"
)

// Source column names.
const (
	ColApp           = "App"
	ColCategory      = "Category"
	ColRating        = "Rating"
	ColReviews       = "Reviews"
	ColSize          = "Size"
	ColInstalls      = "Installs"
	ColContentRating = "Content Rating"
)

// RequiredColumns lists the header names every source must carry.
var RequiredColumns = []string{
	ColApp, ColCategory, ColRating, ColReviews, ColSize, ColInstalls, ColContentRating,
}

// sizeVaries is the marker used by the store for device-dependent sizes.
const sizeVaries = "Varies with device"

// Loader reads a table source once and normalizes it into a Dataset.
type Loader struct {
	logger *utils.Logger
}

// NewLoader creates a Loader with the given logger.
func NewLoader(logger *utils.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads src and returns the normalized dataset. Every source row yields
// exactly one record; unparseable values become missing.
func (l *Loader) Load(src storage.TableSource) (*models.Dataset, error) {
	df, err := src.ReadTable()
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", src.Name(), err)
	}

	if missing := missingColumns(df.Names()); len(missing) > 0 {
		return nil, &SourceFormatError{Source: src.Name(), Missing: missing}
	}

	raw := rawApps(df)
	records := make([]models.AppRecord, len(raw))
	for i, r := range raw {
		records[i] = Normalize(r)
	}

	l.logSummary(src.Name(), records)
	return models.NewDataset(records), nil
}

// Normalize converts one raw row into an AppRecord. It never fails.
func Normalize(r models.RawApp) models.AppRecord {
	return models.AppRecord{
		App:           r.App,
		Category:      r.Category,
		Rating:        NormalizeRating(r.Rating),
		Reviews:       NormalizeReviews(r.Reviews),
		SizeMB:        NormalizeSize(r.Size),
		Installs:      NormalizeInstalls(r.Installs),
		ContentRating: r.ContentRating,
	}
}

// NormalizeInstalls keeps only the ASCII digits of raw and parses them.
// "10,000+" → 10000; "Free" and "" → missing.
func NormalizeInstalls(raw sql.NullString) sql.NullInt64 {
	if !raw.Valid {
		return sql.NullInt64{}
	}
	var b strings.Builder
	for i := 0; i < len(raw.String); i++ {
		if c := raw.String[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	if b.Len() == 0 {
		return sql.NullInt64{}
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

// NormalizeSize parses megabyte sizes such as "19M". "Varies with device"
// and anything else that is not a plain number with an optional trailing M,
// kilobyte values ("1.2k") included, become missing.
func NormalizeSize(raw sql.NullString) sql.NullFloat64 {
	if !raw.Valid || raw.String == sizeVaries {
		return sql.NullFloat64{}
	}
	s := strings.TrimSuffix(strings.TrimSpace(raw.String), "M")
	return parseNonNegativeFloat(s)
}

// NormalizeReviews parses a plain integer review count.
func NormalizeReviews(raw sql.NullString) sql.NullInt64 {
	if !raw.Valid {
		return sql.NullInt64{}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw.String), 10, 64)
	if err != nil || n < 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: n, Valid: true}
}

// NormalizeRating parses a star rating; values outside [1, 5] are missing.
func NormalizeRating(raw sql.NullString) sql.NullFloat64 {
	if !raw.Valid {
		return sql.NullFloat64{}
	}
	v := parseNonNegativeFloat(strings.TrimSpace(raw.String))
	if !v.Valid || v.Float64 < 1 || v.Float64 > 5 {
		return sql.NullFloat64{}
	}
	return v
}

func parseNonNegativeFloat(s string) sql.NullFloat64 {
	if s == "" {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func missingColumns(names []string) []string {
	have := make(map[string]struct{}, len(names))
	for _, n := range names {
		have[n] = struct{}{}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// rawApps extracts the required columns of df row by row.
func rawApps(df dataframe.DataFrame) []models.RawApp {
	cell := func(col string) func(i int) sql.NullString {
		s := df.Col(col)
		return func(i int) sql.NullString {
			e := s.Elem(i)
			if e.IsNA() {
				return sql.NullString{}
			}
			return sql.NullString{String: e.String(), Valid: true}
		}
	}
	app, category, rating := cell(ColApp), cell(ColCategory), cell(ColRating)
	reviews, size, installs := cell(ColReviews), cell(ColSize), cell(ColInstalls)
	contentRating := cell(ColContentRating)

	out := make([]models.RawApp, df.Nrow())
	for i := range out {
		out[i] = models.RawApp{
			App:           app(i),
			Category:      category(i),
			Rating:        rating(i),
			Reviews:       reviews(i),
			Size:          size(i),
			Installs:      installs(i),
			ContentRating: contentRating(i),
		}
	}
	return out
}

func (l *Loader) logSummary(name string, records []models.AppRecord) {
	var noCategory, noRating, noReviews, noSize, noInstalls int
	for _, r := range records {
		if !r.Category.Valid {
			noCategory++
		}
		if !r.Rating.Valid {
			noRating++
		}
		if !r.Reviews.Valid {
			noReviews++
		}
		if !r.SizeMB.Valid {
			noSize++
		}
		if !r.Installs.Valid {
			noInstalls++
		}
	}

	l.logger.Info("[loader] Loaded %d apps from %s", len(records), name)
	l.logger.Debug("[loader] Missing values — category: %d | rating: %d | reviews: %d | size: %d | installs: %d",
		noCategory, noRating, noReviews, noSize, noInstalls)
}
