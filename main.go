package main

import (
	"errors"
	"os"

	"playstore-insights/config"
	"playstore-insights/services"
	"playstore-insights/storage"
	"playstore-insights/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerLevel(cfg.LogLevel)

	logger.Info("=== Play Store App Analysis starting ===")
	logger.Info("Config — dataset: %s | workers: %d | top: %d | uniform empty selection: %t",
		cfg.DatasetPath, cfg.ViewWorkers, cfg.TopN, cfg.UniformEmptySelection)

	src, err := storage.OpenSource(cfg.DatasetPath, cfg.DatasetSheet)
	if err != nil {
		logger.Error("Cannot open dataset: %v", err)
		os.Exit(1)
	}

	data, err := services.NewLoader(logger).Load(src)
	if err != nil {
		var formatErr *services.SourceFormatError
		if errors.As(err, &formatErr) {
			logger.Error("Dataset %s has the wrong shape, missing: %v", formatErr.Source, formatErr.Missing)
		} else {
			logger.Error("Failed to load dataset: %v", err)
		}
		os.Exit(1)
	}

	query := cfg.Query(services.Bounds(data))

	dashboard := services.NewDashboard(logger, cfg.ViewWorkers, cfg.UniformEmptySelection)
	report, err := dashboard.Build(data, query)
	if err != nil {
		logger.Error("Failed to build dashboard: %v", err)
		os.Exit(1)
	}
	dashboard.Print(report)

	if cfg.ExportDir != "" {
		if err := dashboard.Export(cfg.ExportDir, report); err != nil {
			logger.Error("Export failed: %v", err)
			os.Exit(1)
		}
	}
}
