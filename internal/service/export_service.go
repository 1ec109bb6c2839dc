package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"docintel/internal/csvexport"
	"docintel/internal/domain"
	"docintel/internal/port"
	"docintel/internal/xlsxexport"
)

// ExportService serializes the accumulated run history plus summary to the
// configured report sink. It adds no aggregation beyond what Summary
// already computed. An empty name picks a dated default filename.
type ExportService interface {
	WriteReport(ctx context.Context, name string) (string, error)
	WriteCSV(ctx context.Context, name string) (string, error)
	WriteXLSX(ctx context.Context, name string) (string, error)
}

type exportService struct {
	comparisons ComparisonService
	sink        port.ReportSink
}

// NewExportService creates an ExportService writing to sink.
func NewExportService(comparisons ComparisonService, sink port.ReportSink) ExportService {
	return &exportService{comparisons: comparisons, sink: sink}
}

func (s *exportService) WriteReport(ctx context.Context, name string) (string, error) {
	report := s.comparisons.Report()
	if len(report.DetailedResults) == 0 {
		return "", domain.ErrNoResults
	}
	if name == "" {
		name = csvexport.BuildFilename("comparison_report", "json")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}
	return s.sink.Write(ctx, name, "application/json", data)
}

func (s *exportService) WriteCSV(ctx context.Context, name string) (string, error) {
	history := s.comparisons.History()
	if len(history) == 0 {
		return "", domain.ErrNoResults
	}
	if name == "" {
		name = csvexport.BuildFilename("comparison_results", "csv")
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	if err := w.WriteRecords(history); err != nil {
		return "", fmt.Errorf("writing csv rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return s.sink.Write(ctx, name, "text/csv", buf.Bytes())
}

func (s *exportService) WriteXLSX(ctx context.Context, name string) (string, error) {
	report := s.comparisons.Report()
	if len(report.DetailedResults) == 0 {
		return "", domain.ErrNoResults
	}
	if name == "" {
		name = csvexport.BuildFilename("comparison_results", "xlsx")
	}

	data, err := xlsxexport.Build(&report)
	if err != nil {
		return "", fmt.Errorf("building workbook: %w", err)
	}
	return s.sink.Write(ctx, name,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
