package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"playstore-insights/models"
	"playstore-insights/utils"
)

func sampleQuery() models.DashboardQuery {
	return models.DashboardQuery{
		MinRating:   1,
		MaxRating:   5,
		MaxInstalls: 10000000,
		MaxSizeMB:   100,
		TopN:        3,
	}
}

func TestDashboardBuildRunsEveryView(t *testing.T) {
	d := NewDashboard(newTestLogger(), 3, false)
	r, err := d.Build(sampleDataset(), sampleQuery())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if r.TotalApps != 7 {
		t.Errorf("TotalApps: got %d, want 7", r.TotalApps)
	}
	if len(r.CategoryCounts) != 3 {
		t.Errorf("CategoryCounts: got %d groups, want 3", len(r.CategoryCounts))
	}
	if len(r.RatingPoints) != 6 {
		t.Errorf("RatingPoints: got %d, want 6", len(r.RatingPoints))
	}
	if len(r.InstallsByCategory) != 0 {
		t.Errorf("InstallsByCategory: empty selection should give no rows, got %+v", r.InstallsByCategory)
	}
	if len(r.AvgRatingByContent) != 3 {
		t.Errorf("AvgRatingByContent: got %d buckets, want 3", len(r.AvgRatingByContent))
	}
	if len(r.Sizes) != 6 {
		t.Errorf("Sizes: got %d, want 6", len(r.Sizes))
	}
	if len(r.TopByReviews) != 3 {
		t.Errorf("TopByReviews: got %d, want 3", len(r.TopByReviews))
	}
}

func TestDashboardUniformEmptySelection(t *testing.T) {
	d := NewDashboard(newTestLogger(), 2, true)
	r, err := d.Build(sampleDataset(), sampleQuery())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(r.InstallsByCategory) != 3 {
		t.Errorf("InstallsByCategory: got %+v, want all 3 categories", r.InstallsByCategory)
	}
	if !r.Query.InstallCategories.Has("SOCIAL") {
		t.Error("report query should carry the widened selection")
	}
}

func TestDashboardBuildRejectsNegativeTopN(t *testing.T) {
	q := sampleQuery()
	q.TopN = -1

	_, err := NewDashboard(newTestLogger(), 3, false).Build(sampleDataset(), q)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Build: got %v, want ErrInvalidArgument", err)
	}
}

func TestDashboardPrint(t *testing.T) {
	d := NewDashboard(newTestLogger(), 3, true)
	r, err := d.Build(sampleDataset(), sampleQuery())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var buf bytes.Buffer
	d.SetOutput(&buf)
	d.Print(r)

	out := buf.String()
	for _, want := range []string{
		"App Category Distribution",
		"App Ratings Distribution",
		"App Installs by Category",
		"Average Rating by Content Rating",
		"App Size Distribution",
		"Top 3 Apps by Number of Reviews",
		"Chess",
		"10,000,000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestDashboardExport(t *testing.T) {
	d := NewDashboard(newTestLogger(), 3, false)
	r, err := d.Build(sampleDataset(), sampleQuery())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dir := t.TempDir()
	if err := d.Export(dir, r); err != nil {
		t.Fatalf("Export: %v", err)
	}

	body, err := os.ReadFile(filepath.Join(dir, "top_by_reviews.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "app,reviews\nChess,5000\nZombies,5000\nRacer,800\n"
	if string(body) != want {
		t.Errorf("top_by_reviews.csv: got %q, want %q", body, want)
	}

	if _, err := os.Stat(filepath.Join(dir, "installs_by_category.csv")); err != nil {
		t.Errorf("installs export missing: %v", err)
	}
}

func TestHistogram(t *testing.T) {
	bins := histogram([]float64{0, 1, 2, 3, 4, 10}, 5)
	if len(bins) != 5 {
		t.Fatalf("bins: got %d, want 5", len(bins))
	}
	var total int
	for _, b := range bins {
		total += b.count
	}
	if total != 6 {
		t.Errorf("binned values: got %d, want 6", total)
	}
	if bins[0].count != 2 || bins[4].count != 1 {
		t.Errorf("unexpected bins: %+v", bins)
	}

	if got := histogram(nil, 5); got != nil {
		t.Errorf("empty input: got %+v", got)
	}
	if got := histogram([]float64{7, 7}, 5); len(got) != 1 || got[0].count != 2 {
		t.Errorf("constant input: got %+v", got)
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{10000000, "10,000,000"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := groupDigits(tt.n); got != tt.want {
			t.Errorf("groupDigits(%d) = %q; want %q", tt.n, got, tt.want)
		}
	}
}

func TestDashboardWarnsOnUnknownLabels(t *testing.T) {
	var logs bytes.Buffer
	d := NewDashboard(utils.NewLoggerTo(&logs, "warn"), 3, false)

	q := sampleQuery()
	q.Categories = models.NewSelection("GAME", "GAMES")
	q.InstallCategories = models.NewSelection("TOOLS")
	q.ContentRatings = models.NewSelection("Teen", "Adults")
	if _, err := d.Build(sampleDataset(), q); err != nil {
		t.Fatalf("Build: %v", err)
	}

	out := logs.String()
	for _, want := range []string{`"GAMES"`, `"Adults"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected warning for %s, got %q", want, out)
		}
	}
	for _, known := range []string{`"GAME"`, `"TOOLS"`, `"Teen"`} {
		if strings.Contains(out, known) {
			t.Errorf("known label %s should not be reported: %q", known, out)
		}
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		s    string
		max  int
		want string
	}{
		{"Chess", 10, "Chess"},
		{"Калькулятор Про", 10, "Калькул..."},
		{"日本語のアプリ名前", 6, "日本語..."},
	}
	for _, tt := range tests {
		got := truncate(tt.s, tt.max)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q; want %q", tt.s, tt.max, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.s, tt.max)
		}
	}
}
