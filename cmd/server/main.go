package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"docintel/internal/analyzer/azure"
	"docintel/internal/analyzer/google"
	"docintel/internal/config"
	"docintel/internal/export"
	"docintel/internal/handler"
	"docintel/internal/logging"
	"docintel/internal/port"
	"docintel/internal/router"
	"docintel/internal/service"
	s3storage "docintel/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logging.New(&cfg.Log)

	// Vendor analyzers: a vendor without credentials is left nil and the
	// engine degrades to comparing with whichever side exists.
	var azureAnalyzer, googleAnalyzer port.DocumentAnalyzer
	if cfg.Azure.Available() {
		azureAnalyzer = azure.NewAnalyzer(&cfg.Azure)
	} else {
		log.Warn("azure credentials not set; azure analysis disabled")
	}
	if cfg.Google.Available() {
		googleAnalyzer = google.NewAnalyzer(&cfg.Google)
	} else {
		log.Warn("google credentials not set; google analysis disabled")
	}

	comparisonSvc := service.NewComparisonService(azureAnalyzer, googleAnalyzer, cfg.Google.ProcessorID, log)

	sink, err := buildSink(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize report sink: %w", err)
	}
	exportSvc := service.NewExportService(comparisonSvc, sink)

	compareH := handler.NewCompareHandler(comparisonSvc, log)
	reportH := handler.NewReportHandler(comparisonSvc, exportSvc, log)
	healthH := handler.NewHealthHandler(comparisonSvc)

	r := router.Setup(compareH, reportH, healthH, log)

	log.Infof("server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func buildSink(cfg *config.Config) (port.ReportSink, error) {
	if cfg.Export.Sink == "s3" {
		storage, err := s3storage.NewClient(&cfg.S3)
		if err != nil {
			return nil, err
		}
		return export.NewS3Sink(storage, &cfg.S3), nil
	}
	return export.NewLocalSink(cfg.Export.OutputDir), nil
}
