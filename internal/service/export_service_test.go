package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docintel/internal/csvexport"
	"docintel/internal/domain"
	"docintel/internal/service"
	"docintel/mocks"
)

func sampleRecord() domain.ComparisonRecord {
	return domain.ComparisonRecord{
		ID:           uuid.New(),
		DocumentPath: "/docs/invoice.pdf",
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		AzureResult:  &domain.VendorResult{Analysis: analysis(domain.ServiceAzure, 1.0, "hello")},
		GoogleResult: &domain.VendorResult{Analysis: analysis(domain.ServiceGoogle, 2.0, "world")},
		Metrics: domain.ComparisonMetrics{
			ProcessingTime: &domain.ProcessingTimeMetrics{
				Azure:          1.0,
				Google:         2.0,
				FasterService:  domain.FasterAzure,
				TimeDifference: 1.0,
			},
		},
	}
}

func sampleReport() domain.Report {
	return domain.Report{
		Summary: domain.RunSummary{
			TotalDocuments:        1,
			SuccessfulComparisons: 1,
			Performance:           &domain.PerformanceSummary{AzureAvgTime: 1.0, GoogleAvgTime: 2.0, AzureFastestCount: 1},
		},
		DetailedResults: []domain.ComparisonRecord{sampleRecord()},
		GeneratedAt:     time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
}

func TestExportService_WriteReport_NoResults(t *testing.T) {
	comparisons := new(mocks.MockComparisonService)
	comparisons.On("Report").Return(domain.Report{})

	svc := service.NewExportService(comparisons, new(mocks.MockReportSink))

	_, err := svc.WriteReport(context.Background(), "report.json")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestExportService_WriteReport_Success(t *testing.T) {
	report := sampleReport()
	comparisons := new(mocks.MockComparisonService)
	comparisons.On("Report").Return(report)

	sink := new(mocks.MockReportSink)
	sink.On("Write", mock.Anything, "myreport.json", "application/json", mock.Anything).
		Return("/out/myreport.json", nil)

	svc := service.NewExportService(comparisons, sink)

	location, err := svc.WriteReport(context.Background(), "myreport.json")
	require.NoError(t, err)
	assert.Equal(t, "/out/myreport.json", location)

	data := sink.Calls[0].Arguments.Get(3).([]byte)
	var decoded domain.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Summary.TotalDocuments)
	assert.Len(t, decoded.DetailedResults, 1)
}

func TestExportService_WriteReport_DefaultFilename(t *testing.T) {
	comparisons := new(mocks.MockComparisonService)
	comparisons.On("Report").Return(sampleReport())

	sink := new(mocks.MockReportSink)
	sink.On("Write", mock.Anything, mock.Anything, "application/json", mock.Anything).
		Return("ok", nil)

	svc := service.NewExportService(comparisons, sink)

	_, err := svc.WriteReport(context.Background(), "")
	require.NoError(t, err)

	name := sink.Calls[0].Arguments.String(1)
	assert.Contains(t, name, "comparison_report_")
	assert.Contains(t, name, ".json")
}

func TestExportService_WriteCSV_NoResults(t *testing.T) {
	comparisons := new(mocks.MockComparisonService)
	comparisons.On("History").Return([]domain.ComparisonRecord{})

	svc := service.NewExportService(comparisons, new(mocks.MockReportSink))

	_, err := svc.WriteCSV(context.Background(), "out.csv")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestExportService_WriteCSV_Success(t *testing.T) {
	comparisons := new(mocks.MockComparisonService)
	comparisons.On("History").Return([]domain.ComparisonRecord{sampleRecord()})

	sink := new(mocks.MockReportSink)
	sink.On("Write", mock.Anything, "out.csv", "text/csv", mock.Anything).
		Return("/out/out.csv", nil)

	svc := service.NewExportService(comparisons, sink)

	location, err := svc.WriteCSV(context.Background(), "out.csv")
	require.NoError(t, err)
	assert.Equal(t, "/out/out.csv", location)

	data := sink.Calls[0].Arguments.Get(3).([]byte)
	assert.True(t, bytes.HasPrefix(data, csvexport.BOM))

	lines := bytes.Split(bytes.TrimSpace(bytes.TrimPrefix(data, csvexport.BOM)), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "document_path")
	assert.Contains(t, string(lines[1]), "/docs/invoice.pdf")
}

func TestExportService_WriteXLSX_Success(t *testing.T) {
	comparisons := new(mocks.MockComparisonService)
	comparisons.On("Report").Return(sampleReport())

	sink := new(mocks.MockReportSink)
	sink.On("Write", mock.Anything, "out.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", mock.Anything).
		Return("/out/out.xlsx", nil)

	svc := service.NewExportService(comparisons, sink)

	location, err := svc.WriteXLSX(context.Background(), "out.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "/out/out.xlsx", location)

	data := sink.Calls[0].Arguments.Get(3).([]byte)
	assert.NotEmpty(t, data)
}

func TestExportService_WriteXLSX_NoResults(t *testing.T) {
	comparisons := new(mocks.MockComparisonService)
	comparisons.On("Report").Return(domain.Report{})

	svc := service.NewExportService(comparisons, new(mocks.MockReportSink))

	_, err := svc.WriteXLSX(context.Background(), "out.xlsx")
	assert.ErrorIs(t, err, domain.ErrNoResults)
}
