package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"playstore-insights/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath  string
	DatasetSheet string
	LogLevel     string

	ViewWorkers int
	TopN        int
	ExportDir   string

	// UniformEmptySelection makes an empty installs-by-category selection
	// mean "all categories", like the other panels.
	UniformEmptySelection bool

	Categories        []string
	InstallCategories []string
	ContentRatings    []string

	// Range limits; nil means "use the dataset bound".
	MinRating   *float64
	MaxRating   *float64
	MinInstalls *int64
	MaxInstalls *int64
	MinSizeMB   *float64
	MaxSizeMB   *float64
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		DatasetPath:  getEnv("DATASET_PATH", "./googleplaystore.csv"),
		DatasetSheet: getEnv("DATASET_SHEET", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		ViewWorkers: getEnvInt("VIEW_WORKERS", 3),
		TopN:        getEnvInt("TOP_N", 10),
		ExportDir:   getEnv("EXPORT_DIR", ""),

		UniformEmptySelection: getEnvBool("UNIFORM_EMPTY_SELECTION", false),

		Categories:        getEnvList("CATEGORIES"),
		InstallCategories: getEnvList("INSTALL_CATEGORIES"),
		ContentRatings:    getEnvList("CONTENT_RATINGS"),

		MinRating:   getEnvFloat("MIN_RATING"),
		MaxRating:   getEnvFloat("MAX_RATING"),
		MinInstalls: getEnvInt64("MIN_INSTALLS"),
		MaxInstalls: getEnvInt64("MAX_INSTALLS"),
		MinSizeMB:   getEnvFloat("MIN_SIZE_MB"),
		MaxSizeMB:   getEnvFloat("MAX_SIZE_MB"),
	}
}

// Query resolves the configured filters against the dataset bounds. Unset
// limits default to the full observed range, with 0 as the lower limit for
// installs and size.
func (c *Config) Query(b models.Bounds) models.DashboardQuery {
	q := models.DashboardQuery{
		Categories:        models.NewSelection(c.Categories...),
		InstallCategories: models.NewSelection(c.InstallCategories...),
		ContentRatings:    models.NewSelection(c.ContentRatings...),
		MinRating:         1,
		MaxRating:         5,
		TopN:              c.TopN,
	}
	if b.MinRating.Valid {
		q.MinRating = b.MinRating.Float64
	}
	if b.MaxRating.Valid {
		q.MaxRating = b.MaxRating.Float64
	}
	if b.MaxInstalls.Valid {
		q.MaxInstalls = b.MaxInstalls.Int64
	}
	if b.MaxSizeMB.Valid {
		q.MaxSizeMB = b.MaxSizeMB.Float64
	}

	if c.MinRating != nil {
		q.MinRating = *c.MinRating
	}
	if c.MaxRating != nil {
		q.MaxRating = *c.MaxRating
	}
	if c.MinInstalls != nil {
		q.MinInstalls = *c.MinInstalls
	}
	if c.MaxInstalls != nil {
		q.MaxInstalls = *c.MaxInstalls
	}
	if c.MinSizeMB != nil {
		q.MinSizeMB = *c.MinSizeMB
	}
	if c.MaxSizeMB != nil {
		q.MaxSizeMB = *c.MaxSizeMB
	}
	return q
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvInt64(key string) *int64 {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		log.Printf("[config] Ignoring %s=%q: %v", key, val, err)
		return nil
	}
	return &n
}

func getEnvFloat(key string) *float64 {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		log.Printf("[config] Ignoring %s=%q: %v", key, val, err)
		return nil
	}
	return &f
}

// getEnvList splits a comma-separated variable, dropping blank items.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
