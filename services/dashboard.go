package services

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"playstore-insights/models"
	"playstore-insights/storage"
	"playstore-insights/utils"
)

const histogramBins = 10

// Dashboard runs every view for one query and renders the derived tables.
type Dashboard struct {
	logger       *utils.Logger
	workers      int
	uniformEmpty bool
	out          io.Writer
}

// NewDashboard creates a Dashboard printing to stdout. workers bounds how many
// views run at once. When uniformEmpty is set an empty installs selection is
// widened to every category before the view runs.
func NewDashboard(logger *utils.Logger, workers int, uniformEmpty bool) *Dashboard {
	return &Dashboard{logger: logger, workers: workers, uniformEmpty: uniformEmpty, out: os.Stdout}
}

// SetOutput redirects Print.
func (d *Dashboard) SetOutput(w io.Writer) { d.out = w }

// Build computes every panel of the report. Views run concurrently; each
// job writes a distinct report field.
func (d *Dashboard) Build(data *models.Dataset, q models.DashboardQuery) (*models.DashboardReport, error) {
	categories := data.Categories()
	d.warnUnknown("category", q.Categories, categories)
	d.warnUnknown("install category", q.InstallCategories, categories)
	d.warnUnknown("content rating", q.ContentRatings, data.ContentRatings())

	if d.uniformEmpty && q.InstallCategories.Empty() {
		q.InstallCategories = models.NewSelection(categories...)
	}

	r := &models.DashboardReport{TotalApps: data.Len(), Query: q}
	pool := utils.NewWorkerPool(d.workers)

	pool.Submit(func() error {
		r.CategoryCounts = CategoryCounts(data, q.Categories)
		return nil
	})
	pool.Submit(func() error {
		r.RatingPoints = RatingsInRange(data, q.MinRating, q.MaxRating)
		return nil
	})
	pool.Submit(func() error {
		r.InstallsByCategory = InstallsByCategory(data, q.InstallCategories, q.MinInstalls, q.MaxInstalls)
		return nil
	})
	pool.Submit(func() error {
		r.AvgRatingByContent = AvgRatingByContentRating(data, q.ContentRatings)
		return nil
	})
	pool.Submit(func() error {
		r.Sizes = SizesInRange(data, q.MinSizeMB, q.MaxSizeMB)
		return nil
	})
	pool.Submit(func() error {
		top, err := TopNByReviews(data, q.TopN)
		if err != nil {
			return err
		}
		r.TopByReviews = top
		return nil
	})

	if err := pool.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	d.logger.Debug("[dashboard] Built report — categories: %d | rating points: %d | sizes: %d | top: %d",
		len(r.CategoryCounts), len(r.RatingPoints), len(r.Sizes), len(r.TopByReviews))
	return r, nil
}

// warnUnknown logs every selected label the dataset does not contain; such a
// label silently narrows its panel.
func (d *Dashboard) warnUnknown(kind string, sel models.Selection, known []string) {
	for _, label := range sel.Missing(known) {
		d.logger.Warn("[dashboard] Selected %s %q does not occur in the dataset", kind, label)
	}
}

// Print renders the report to the configured output.
func (d *Dashboard) Print(r *models.DashboardReport) {
	w := d.out
	sep := strings.Repeat("═", 60)
	thin := strings.Repeat("─", 60)
	title := cases.Title(language.English)

	fmt.Fprintf(w, "\n\033[1;34m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;34m  GOOGLE PLAY STORE APP ANALYSIS (%d apps)\033[0m\n", r.TotalApps)
	fmt.Fprintf(w, "\033[1;34m%s\033[0m\n\n", sep)

	header := func(name string) {
		fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", name)
		fmt.Fprintf(w, "  %s\n", thin)
	}

	header("App Category Distribution")
	if len(r.CategoryCounts) == 0 {
		fmt.Fprintf(w, "  No apps match the selected categories\n")
	}
	for _, c := range r.CategoryCounts {
		fmt.Fprintf(w, "  %-30s %6d\n", truncate(displayLabel(title, c.Category), 28), c.Count)
	}
	fmt.Fprintln(w)

	header(fmt.Sprintf("App Ratings Distribution (%.1f – %.1f)", r.Query.MinRating, r.Query.MaxRating))
	fmt.Fprintf(w, "  Apps in range : \033[1m%d\033[0m\n", len(r.RatingPoints))
	if len(r.RatingPoints) > 0 {
		var sum float64
		var reviewed int
		for _, p := range r.RatingPoints {
			sum += p.Rating
			if p.Reviews.Valid {
				reviewed++
			}
		}
		fmt.Fprintf(w, "  Mean rating   : \033[1;32m%.2f\033[0m\n", sum/float64(len(r.RatingPoints)))
		fmt.Fprintf(w, "  With reviews  : %d\n", reviewed)
	}
	fmt.Fprintln(w)

	header("App Installs by Category")
	if len(r.InstallsByCategory) == 0 {
		fmt.Fprintf(w, "  No categories selected\n")
	}
	for _, c := range r.InstallsByCategory {
		fmt.Fprintf(w, "  %-30s %16s\n", truncate(displayLabel(title, c.Category), 28), groupDigits(c.TotalInstalls))
	}
	fmt.Fprintln(w)

	header("Average Rating by Content Rating")
	if len(r.AvgRatingByContent) == 0 {
		fmt.Fprintf(w, "  No rated apps\n")
	}
	for _, c := range r.AvgRatingByContent {
		fmt.Fprintf(w, "  %-20s \033[1;32m%.2f ★\033[0m\n", c.ContentRating, c.MeanRating)
	}
	fmt.Fprintln(w)

	header(fmt.Sprintf("App Size Distribution (%.0f – %.0f MB)", r.Query.MinSizeMB, r.Query.MaxSizeMB))
	bins := histogram(r.Sizes, histogramBins)
	if len(bins) == 0 {
		fmt.Fprintf(w, "  No size data in range\n")
	}
	for _, b := range bins {
		bar := strings.Repeat("█", scaleBar(b.count, len(r.Sizes), 40))
		fmt.Fprintf(w, "  %7.1f – %-7.1f %s (%d)\n", b.lo, b.hi, bar, b.count)
	}
	fmt.Fprintln(w)

	header(fmt.Sprintf("Top %d Apps by Number of Reviews", r.Query.TopN))
	if len(r.TopByReviews) == 0 {
		fmt.Fprintf(w, "  No reviewed apps\n")
	} else {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"#", "App", "Reviews"})
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		for i, a := range r.TopByReviews {
			table.Append([]string{strconv.Itoa(i + 1), truncate(a.App, 40), groupDigits(a.Reviews)})
		}
		table.Render()
	}

	fmt.Fprintf(w, "\n\033[1;34m%s\033[0m\n\n", sep)
}

// Export writes every panel of r as a CSV file into dir.
func (d *Dashboard) Export(dir string, r *models.DashboardReport) error {
	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"category_counts.csv", []string{"category", "count"}, categoryRows(r)},
		{"ratings_in_range.csv", []string{"rating", "reviews"}, ratingRows(r)},
		{"installs_by_category.csv", []string{"category", "total_installs"}, installRows(r)},
		{"avg_rating_by_content_rating.csv", []string{"content_rating", "mean_rating"}, contentRows(r)},
		{"sizes_in_range.csv", []string{"size_mb"}, sizeRows(r)},
		{"top_by_reviews.csv", []string{"app", "reviews"}, topRows(r)},
	}

	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		if err := writeTable(path, t.header, t.rows); err != nil {
			return err
		}
		d.logger.Debug("[dashboard] Exported %d rows to %s", len(t.rows), path)
	}
	d.logger.Info("[dashboard] Exported %d tables to %s", len(tables), dir)
	return nil
}

func writeTable(path string, header []string, rows [][]string) error {
	w, err := storage.NewTableWriter(path, header)
	if err != nil {
		return err
	}
	if err := w.WriteRows(rows); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func categoryRows(r *models.DashboardReport) [][]string {
	rows := make([][]string, 0, len(r.CategoryCounts))
	for _, c := range r.CategoryCounts {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.Count)})
	}
	return rows
}

func ratingRows(r *models.DashboardReport) [][]string {
	rows := make([][]string, 0, len(r.RatingPoints))
	for _, p := range r.RatingPoints {
		reviews := ""
		if p.Reviews.Valid {
			reviews = strconv.FormatInt(p.Reviews.Int64, 10)
		}
		rows = append(rows, []string{formatFloat(p.Rating), reviews})
	}
	return rows
}

func installRows(r *models.DashboardReport) [][]string {
	rows := make([][]string, 0, len(r.InstallsByCategory))
	for _, c := range r.InstallsByCategory {
		rows = append(rows, []string{c.Category, strconv.FormatInt(c.TotalInstalls, 10)})
	}
	return rows
}

func contentRows(r *models.DashboardReport) [][]string {
	rows := make([][]string, 0, len(r.AvgRatingByContent))
	for _, c := range r.AvgRatingByContent {
		rows = append(rows, []string{c.ContentRating, formatFloat(c.MeanRating)})
	}
	return rows
}

func sizeRows(r *models.DashboardReport) [][]string {
	rows := make([][]string, 0, len(r.Sizes))
	for _, s := range r.Sizes {
		rows = append(rows, []string{formatFloat(s)})
	}
	return rows
}

func topRows(r *models.DashboardReport) [][]string {
	rows := make([][]string, 0, len(r.TopByReviews))
	for _, a := range r.TopByReviews {
		rows = append(rows, []string{a.App, strconv.FormatInt(a.Reviews, 10)})
	}
	return rows
}

type bin struct {
	lo, hi float64
	count  int
}

// histogram splits values into n equal-width bins over their observed range.
func histogram(values []float64, n int) []bin {
	if len(values) == 0 || n < 1 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return []bin{{lo: lo, hi: hi, count: len(values)}}
	}

	width := (hi - lo) / float64(n)
	bins := make([]bin, n)
	for i := range bins {
		bins[i].lo = lo + float64(i)*width
		bins[i].hi = bins[i].lo + width
	}
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		bins[i].count++
	}
	return bins
}

func scaleBar(count, total, width int) int {
	if total == 0 || count == 0 {
		return 0
	}
	if n := count * width / total; n > 0 {
		return n
	}
	return 1
}

// displayLabel turns "ART_AND_DESIGN" into "Art And Design".
func displayLabel(c cases.Caser, label string) string {
	return c.String(strings.ToLower(strings.ReplaceAll(label, "_", " ")))
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
