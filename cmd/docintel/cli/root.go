package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docintel/internal/analyzer/azure"
	"docintel/internal/analyzer/google"
	"docintel/internal/config"
	"docintel/internal/export"
	"docintel/internal/logging"
	"docintel/internal/port"
	"docintel/internal/service"
	s3storage "docintel/internal/storage/s3"
)

// NewRootCmd creates the root command for docintel.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "docintel",
		Short:         "Compare Azure Document Intelligence and Google Document AI on the same documents",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newEnvCmd())

	return rootCmd
}

// app bundles the wired services a CLI command needs.
type app struct {
	comparisons service.ComparisonService
	exports     service.ExportService
}

// buildApp loads config and wires analyzers, engine and report sink. A
// vendor without credentials is left out rather than failing the command.
func buildApp() (*app, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	log := logging.New(&cfg.Log)

	var azureAnalyzer, googleAnalyzer port.DocumentAnalyzer
	if cfg.Azure.Available() {
		azureAnalyzer = azure.NewAnalyzer(&cfg.Azure)
	}
	if cfg.Google.Available() {
		googleAnalyzer = google.NewAnalyzer(&cfg.Google)
	}

	comparisons := service.NewComparisonService(azureAnalyzer, googleAnalyzer, cfg.Google.ProcessorID, log)

	var sink port.ReportSink
	if cfg.Export.Sink == "s3" {
		storage, err := s3storage.NewClient(&cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("initializing s3 sink: %w", err)
		}
		sink = export.NewS3Sink(storage, &cfg.S3)
	} else {
		sink = export.NewLocalSink(cfg.Export.OutputDir)
	}

	return &app{
		comparisons: comparisons,
		exports:     service.NewExportService(comparisons, sink),
	}, nil
}

// exportFlags are the shared output flags on compare and batch.
type exportFlags struct {
	report bool
	csv    bool
	xlsx   bool
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.report, "report", false, "write the JSON report after the run")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "write the CSV projection after the run")
	cmd.Flags().BoolVar(&f.xlsx, "xlsx", false, "write the XLSX projection after the run")
}

func (f *exportFlags) run(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	if f.report {
		location, err := a.exports.WriteReport(ctx, "")
		if err != nil {
			return err
		}
		cmd.Printf("report saved to %s\n", location)
	}
	if f.csv {
		location, err := a.exports.WriteCSV(ctx, "")
		if err != nil {
			return err
		}
		cmd.Printf("results exported to %s\n", location)
	}
	if f.xlsx {
		location, err := a.exports.WriteXLSX(ctx, "")
		if err != nil {
			return err
		}
		cmd.Printf("results exported to %s\n", location)
	}
	return nil
}
