package service

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docintel/internal/domain"
	"docintel/internal/port"
)

// supportedExtensions are the file types batch mode picks up. Matching is
// case-insensitive.
var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".tiff": {},
	".tif":  {},
	".bmp":  {},
}

// CompareOptions selects the vendor model/processor for a comparison.
// Empty fields fall back to the configured defaults.
type CompareOptions struct {
	AzureModelID      string
	GoogleProcessorID string
}

// ComparisonService runs both vendor analyzers against the same document
// and derives cross-vendor metrics. It owns the run history: an append-only
// list living for the process lifetime.
type ComparisonService interface {
	Compare(ctx context.Context, documentPath string, opts CompareOptions) (*domain.ComparisonRecord, error)
	Batch(ctx context.Context, directory string, opts CompareOptions) ([]domain.ComparisonRecord, error)
	History() []domain.ComparisonRecord
	Summary() domain.RunSummary
	Report() domain.Report
	AzureAvailable() bool
	GoogleAvailable() bool
}

type comparisonService struct {
	azure            port.DocumentAnalyzer
	google           port.DocumentAnalyzer
	defaultProcessor string
	log              *logrus.Logger

	mu      sync.Mutex
	history []domain.ComparisonRecord
}

// NewComparisonService creates the engine. Either analyzer may be nil,
// meaning that vendor is unavailable (missing credentials); comparisons
// still run with whichever side exists. defaultProcessor is the configured
// Google processor id, used when CompareOptions does not override it.
func NewComparisonService(azure, google port.DocumentAnalyzer, defaultProcessor string, log *logrus.Logger) ComparisonService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &comparisonService{
		azure:            azure,
		google:           google,
		defaultProcessor: defaultProcessor,
		log:              log,
	}
}

func (s *comparisonService) AzureAvailable() bool  { return s.azure != nil }
func (s *comparisonService) GoogleAvailable() bool { return s.google != nil }

// Compare analyzes one document with both vendors. It fails fast when the
// document does not exist; everything after that is non-fatal. Each vendor
// call is wrapped individually so one vendor's failure never prevents the
// other's call.
func (s *comparisonService) Compare(ctx context.Context, documentPath string, opts CompareOptions) (*domain.ComparisonRecord, error) {
	if _, err := os.Stat(documentPath); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, documentPath)
	}

	rec := domain.ComparisonRecord{
		ID:           uuid.New(),
		DocumentPath: documentPath,
		Timestamp:    time.Now(),
	}

	if s.azure != nil {
		s.log.Info("processing with Azure Document Intelligence...")
		result, err := s.azure.Analyze(ctx, port.AnalyzeInput{
			DocumentPath: documentPath,
			ModelID:      opts.AzureModelID,
		})
		if err != nil {
			s.log.Warnf("azure error: %v", err)
			rec.AzureResult = &domain.VendorResult{Err: err.Error()}
		} else {
			s.log.Infof("azure processing time: %.2fs", result.ProcessingTimeSeconds)
			rec.AzureResult = &domain.VendorResult{Analysis: result}
		}
	} else {
		s.log.Info("azure client not available")
	}

	processorID := opts.GoogleProcessorID
	if processorID == "" {
		processorID = s.defaultProcessor
	}
	if s.google != nil && processorID != "" {
		s.log.Info("processing with Google Document AI...")
		result, err := s.google.Analyze(ctx, port.AnalyzeInput{
			DocumentPath: documentPath,
			ModelID:      processorID,
		})
		if err != nil {
			s.log.Warnf("google error: %v", err)
			rec.GoogleResult = &domain.VendorResult{Err: err.Error()}
		} else {
			s.log.Infof("google processing time: %.2fs", result.ProcessingTimeSeconds)
			rec.GoogleResult = &domain.VendorResult{Analysis: result}
		}
	} else {
		s.log.Info("google client not available or processor id not provided")
	}

	rec.Metrics = computeMetrics(rec.AzureResult, rec.GoogleResult)

	s.mu.Lock()
	s.history = append(s.history, rec)
	s.mu.Unlock()

	return &rec, nil
}

// Batch compares every supported file in directory, in directory-listing
// order. A failure on one file is logged and skipped; the batch never
// aborts early. Only the missing-directory check is fatal.
func (s *comparisonService) Batch(ctx context.Context, directory string, opts CompareOptions) ([]domain.ComparisonRecord, error) {
	info, err := os.Stat(directory)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrDirectoryNotFound, directory)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("listing directory: %w", err)
	}

	var records []domain.ComparisonRecord
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}

		documentPath := filepath.Join(directory, entry.Name())
		s.log.Infof("processing: %s", entry.Name())

		rec, err := s.Compare(ctx, documentPath, opts)
		if err != nil {
			s.log.Warnf("error processing %s: %v", entry.Name(), err)
			continue
		}
		records = append(records, *rec)
	}

	return records, nil
}

// History returns a snapshot of all recorded comparisons.
func (s *comparisonService) History() []domain.ComparisonRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ComparisonRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Summary aggregates over the subset of recorded comparisons where both
// vendors succeeded. With an empty subset it returns only the sentinel
// message, no numeric fields.
func (s *comparisonService) Summary() domain.RunSummary {
	history := s.History()

	var successful []domain.ComparisonRecord
	for i := range history {
		if history[i].BothSucceeded() {
			successful = append(successful, history[i])
		}
	}

	if len(successful) == 0 {
		return domain.RunSummary{Message: "No successful comparisons found"}
	}

	perf := &domain.PerformanceSummary{}
	var azureTotal, googleTotal float64
	for i := range successful {
		azureTotal += successful[i].AzureResult.Analysis.ProcessingTimeSeconds
		googleTotal += successful[i].GoogleResult.Analysis.ProcessingTimeSeconds
		switch successful[i].Metrics.ProcessingTime.FasterService {
		case domain.FasterAzure:
			perf.AzureFastestCount++
		case domain.FasterGoogle:
			perf.GoogleFastestCount++
		}
	}
	perf.AzureAvgTime = azureTotal / float64(len(successful))
	perf.GoogleAvgTime = googleTotal / float64(len(successful))

	return domain.RunSummary{
		TotalDocuments:        len(history),
		SuccessfulComparisons: len(successful),
		Performance:           perf,
	}
}

// Report assembles the full run report: summary, every recorded comparison
// and a generation timestamp.
func (s *comparisonService) Report() domain.Report {
	return domain.Report{
		Summary:         s.Summary(),
		DetailedResults: s.History(),
		GeneratedAt:     time.Now(),
	}
}

// computeMetrics derives cross-vendor metrics. Metrics exist only when both
// slots hold successful analyses; otherwise the empty (all-nil) metrics
// struct is returned. The faster-service tie-break is a strict less-than on
// Azure's time, so exact ties go to Azure.
func computeMetrics(azure, google *domain.VendorResult) domain.ComparisonMetrics {
	if !azure.Succeeded() || !google.Succeeded() {
		return domain.ComparisonMetrics{}
	}

	a, g := azure.Analysis, google.Analysis

	// Exact ties go to Azure.
	faster := domain.FasterGoogle
	if a.ProcessingTimeSeconds <= g.ProcessingTimeSeconds {
		faster = domain.FasterAzure
	}

	return domain.ComparisonMetrics{
		ProcessingTime: &domain.ProcessingTimeMetrics{
			Azure:          a.ProcessingTimeSeconds,
			Google:         g.ProcessingTimeSeconds,
			FasterService:  faster,
			TimeDifference: math.Abs(a.ProcessingTimeSeconds - g.ProcessingTimeSeconds),
		},
		TextExtraction: &domain.TextExtractionMetrics{
			AzureTextLength:  len(a.TextContent),
			GoogleTextLength: len(g.TextContent),
			LengthDifference: absInt(len(a.TextContent) - len(g.TextContent)),
		},
		TableDetection: &domain.TableDetectionMetrics{
			AzureTablesCount:  len(a.Tables),
			GoogleTablesCount: len(g.Tables),
			TablesDifference:  absInt(len(a.Tables) - len(g.Tables)),
		},
		ConfidenceScores: &domain.ConfidenceComparisonMetrics{
			AzureAvgConfidence:  a.ConfidenceScores.Average,
			GoogleAvgConfidence: g.ConfidenceScores.Average,
			AzureMinConfidence:  a.ConfidenceScores.Min,
			GoogleMinConfidence: g.ConfidenceScores.Min,
			AzureMaxConfidence:  a.ConfidenceScores.Max,
			GoogleMaxConfidence: g.ConfidenceScores.Max,
		},
		FormExtraction: &domain.FormExtractionMetrics{
			AzureKeyValuePairs:   len(a.KeyValuePairs),
			GoogleFormFields:     len(g.KeyValuePairs),
			ExtractionDifference: absInt(len(a.KeyValuePairs) - len(g.KeyValuePairs)),
		},
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
