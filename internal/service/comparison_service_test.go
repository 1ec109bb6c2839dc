package service_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docintel/internal/domain"
	"docintel/internal/port"
	"docintel/internal/service"
	"docintel/mocks"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func analysis(svc string, secs float64, text string) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Service:               svc,
		ProcessingTimeSeconds: secs,
		TextContent:           text,
		Tables:                []domain.Table{},
		KeyValuePairs:         []domain.KeyValuePair{},
		ConfidenceScores:      domain.ConfidenceSummary{Average: 0.9, Min: 0.8, Max: 1.0},
	}
}

func writeDoc(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestComparisonService_Compare_DocumentNotFound(t *testing.T) {
	svc := service.NewComparisonService(nil, nil, "", quietLogger())

	rec, err := svc.Compare(context.Background(), "/nonexistent/doc.pdf", service.CompareOptions{})
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	assert.Empty(t, svc.History())
}

func TestComparisonService_Compare_AzureFaster(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceAzure, 1.0, "hello"), nil)
	google := new(mocks.MockDocumentAnalyzer)
	google.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceGoogle, 2.0, "hello world"), nil)

	svc := service.NewComparisonService(azure, google, "proc-1", quietLogger())

	rec, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.BothSucceeded())

	require.NotNil(t, rec.Metrics.ProcessingTime)
	assert.Equal(t, domain.FasterAzure, rec.Metrics.ProcessingTime.FasterService)
	assert.InDelta(t, 1.0, rec.Metrics.ProcessingTime.TimeDifference, 1e-9)

	require.NotNil(t, rec.Metrics.TextExtraction)
	assert.Equal(t, 5, rec.Metrics.TextExtraction.AzureTextLength)
	assert.Equal(t, 11, rec.Metrics.TextExtraction.GoogleTextLength)
	assert.Equal(t, 6, rec.Metrics.TextExtraction.LengthDifference)

	require.NotNil(t, rec.Metrics.ConfidenceScores)
	assert.Equal(t, 0.9, rec.Metrics.ConfidenceScores.AzureAvgConfidence)

	assert.Len(t, svc.History(), 1)
}

func TestComparisonService_Compare_GoogleFaster(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceAzure, 3.0, ""), nil)
	google := new(mocks.MockDocumentAnalyzer)
	google.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceGoogle, 1.5, ""), nil)

	svc := service.NewComparisonService(azure, google, "proc-1", quietLogger())

	rec, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.FasterGoogle, rec.Metrics.ProcessingTime.FasterService)
	assert.InDelta(t, 1.5, rec.Metrics.ProcessingTime.TimeDifference, 1e-9)
}

func TestComparisonService_Compare_TieGoesToAzure(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceAzure, 1.5, ""), nil)
	google := new(mocks.MockDocumentAnalyzer)
	google.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceGoogle, 1.5, ""), nil)

	svc := service.NewComparisonService(azure, google, "proc-1", quietLogger())

	rec, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.FasterAzure, rec.Metrics.ProcessingTime.FasterService)
	assert.Equal(t, 0.0, rec.Metrics.ProcessingTime.TimeDifference)
}

func TestComparisonService_Compare_VendorError_NoMetrics(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(nil, errors.New("azure exploded"))
	google := new(mocks.MockDocumentAnalyzer)
	google.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceGoogle, 1.0, "text"), nil)

	svc := service.NewComparisonService(azure, google, "proc-1", quietLogger())

	rec, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)

	require.NotNil(t, rec.AzureResult)
	assert.False(t, rec.AzureResult.Succeeded())
	assert.Equal(t, "azure exploded", rec.AzureResult.Err)
	assert.True(t, rec.GoogleResult.Succeeded())

	assert.False(t, rec.BothSucceeded())
	assert.Equal(t, domain.ComparisonMetrics{}, rec.Metrics)

	// The failed comparison is still recorded.
	assert.Len(t, svc.History(), 1)
}

func TestComparisonService_Compare_VendorsUnavailable(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	svc := service.NewComparisonService(nil, nil, "", quietLogger())
	assert.False(t, svc.AzureAvailable())
	assert.False(t, svc.GoogleAvailable())

	rec, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)
	assert.Nil(t, rec.AzureResult)
	assert.Nil(t, rec.GoogleResult)
	assert.Equal(t, domain.ComparisonMetrics{}, rec.Metrics)
}

func TestComparisonService_Compare_DefaultProcessorApplied(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	google := new(mocks.MockDocumentAnalyzer)
	google.On("Analyze", mock.Anything, port.AnalyzeInput{DocumentPath: doc, ModelID: "proc-default"}).
		Return(analysis(domain.ServiceGoogle, 1.0, ""), nil)

	svc := service.NewComparisonService(nil, google, "proc-default", quietLogger())

	_, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)
	google.AssertExpectations(t)
}

func TestComparisonService_Compare_ProcessorOverride(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	google := new(mocks.MockDocumentAnalyzer)
	google.On("Analyze", mock.Anything, port.AnalyzeInput{DocumentPath: doc, ModelID: "proc-override"}).
		Return(analysis(domain.ServiceGoogle, 1.0, ""), nil)

	svc := service.NewComparisonService(nil, google, "proc-default", quietLogger())

	_, err := svc.Compare(context.Background(), doc, service.CompareOptions{GoogleProcessorID: "proc-override"})
	require.NoError(t, err)
	google.AssertExpectations(t)
}

func TestComparisonService_Compare_NoProcessorSkipsGoogle(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	google := new(mocks.MockDocumentAnalyzer)

	svc := service.NewComparisonService(nil, google, "", quietLogger())

	rec, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)
	assert.Nil(t, rec.GoogleResult)
	google.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestComparisonService_Batch_FiltersUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.pdf")
	writeDoc(t, dir, "b.PNG")
	writeDoc(t, dir, "c.jpeg")
	writeDoc(t, dir, "notes.txt")
	writeDoc(t, dir, "data.webp")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceAzure, 1.0, ""), nil)

	svc := service.NewComparisonService(azure, nil, "", quietLogger())

	records, err := svc.Batch(context.Background(), dir, service.CompareOptions{})
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Len(t, svc.History(), 3)
}

func TestComparisonService_Batch_ContinuesAfterFileFailure(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.pdf")
	// A dangling symlink appears in the listing but fails the existence
	// check at comparison time.
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "b.pdf")))
	writeDoc(t, dir, "c.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceAzure, 1.0, ""), nil)

	svc := service.NewComparisonService(azure, nil, "", quietLogger())

	records, err := svc.Batch(context.Background(), dir, service.CompareOptions{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, filepath.Join(dir, "a.pdf"), records[0].DocumentPath)
	assert.Equal(t, filepath.Join(dir, "c.pdf"), records[1].DocumentPath)
}

func TestComparisonService_Batch_DirectoryNotFound(t *testing.T) {
	svc := service.NewComparisonService(nil, nil, "", quietLogger())

	_, err := svc.Batch(context.Background(), "/nonexistent/dir", service.CompareOptions{})
	assert.ErrorIs(t, err, domain.ErrDirectoryNotFound)

	// A plain file is not a directory either.
	doc := writeDoc(t, t.TempDir(), "a.pdf")
	_, err = svc.Batch(context.Background(), doc, service.CompareOptions{})
	assert.ErrorIs(t, err, domain.ErrDirectoryNotFound)
}

func TestComparisonService_Summary_Empty(t *testing.T) {
	svc := service.NewComparisonService(nil, nil, "", quietLogger())

	summary := svc.Summary()
	assert.Equal(t, "No successful comparisons found", summary.Message)
	assert.Zero(t, summary.TotalDocuments)
	assert.Zero(t, summary.SuccessfulComparisons)
	assert.Nil(t, summary.Performance)
}

func TestComparisonService_Summary_OnlyFailedComparisons(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	svc := service.NewComparisonService(azure, nil, "", quietLogger())
	_, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)

	summary := svc.Summary()
	assert.Equal(t, "No successful comparisons found", summary.Message)
}

func TestComparisonService_Summary_Aggregates(t *testing.T) {
	dir := t.TempDir()
	docA := writeDoc(t, dir, "a.pdf")
	docB := writeDoc(t, dir, "b.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, port.AnalyzeInput{DocumentPath: docA, ModelID: ""}).
		Return(analysis(domain.ServiceAzure, 1.0, ""), nil)
	azure.On("Analyze", mock.Anything, port.AnalyzeInput{DocumentPath: docB, ModelID: ""}).
		Return(analysis(domain.ServiceAzure, 4.0, ""), nil)

	google := new(mocks.MockDocumentAnalyzer)
	google.On("Analyze", mock.Anything, port.AnalyzeInput{DocumentPath: docA, ModelID: "proc-1"}).
		Return(analysis(domain.ServiceGoogle, 2.0, ""), nil)
	google.On("Analyze", mock.Anything, port.AnalyzeInput{DocumentPath: docB, ModelID: "proc-1"}).
		Return(analysis(domain.ServiceGoogle, 3.0, ""), nil)

	svc := service.NewComparisonService(azure, google, "proc-1", quietLogger())

	_, err := svc.Compare(context.Background(), docA, service.CompareOptions{})
	require.NoError(t, err)
	_, err = svc.Compare(context.Background(), docB, service.CompareOptions{})
	require.NoError(t, err)

	summary := svc.Summary()
	assert.Empty(t, summary.Message)
	assert.Equal(t, 2, summary.TotalDocuments)
	assert.Equal(t, 2, summary.SuccessfulComparisons)
	require.NotNil(t, summary.Performance)
	assert.InDelta(t, 2.5, summary.Performance.AzureAvgTime, 1e-9)
	assert.InDelta(t, 2.5, summary.Performance.GoogleAvgTime, 1e-9)
	assert.Equal(t, 1, summary.Performance.AzureFastestCount)
	assert.Equal(t, 1, summary.Performance.GoogleFastestCount)
}

func TestComparisonService_History_ReturnsSnapshot(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceAzure, 1.0, ""), nil)

	svc := service.NewComparisonService(azure, nil, "", quietLogger())
	_, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)

	history := svc.History()
	require.Len(t, history, 1)
	history[0].DocumentPath = "mutated"

	assert.Equal(t, doc, svc.History()[0].DocumentPath)
}

func TestComparisonService_Report(t *testing.T) {
	doc := writeDoc(t, t.TempDir(), "invoice.pdf")

	azure := new(mocks.MockDocumentAnalyzer)
	azure.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceAzure, 1.0, ""), nil)
	google := new(mocks.MockDocumentAnalyzer)
	google.On("Analyze", mock.Anything, mock.Anything).Return(analysis(domain.ServiceGoogle, 2.0, ""), nil)

	svc := service.NewComparisonService(azure, google, "proc-1", quietLogger())
	_, err := svc.Compare(context.Background(), doc, service.CompareOptions{})
	require.NoError(t, err)

	report := svc.Report()
	assert.Len(t, report.DetailedResults, 1)
	assert.Equal(t, 1, report.Summary.SuccessfulComparisons)
	assert.False(t, report.GeneratedAt.IsZero())
}
