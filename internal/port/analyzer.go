package port

import (
	"context"

	"docintel/internal/domain"
)

// AnalyzeInput carries the data needed for a single vendor analysis call.
type AnalyzeInput struct {
	// DocumentPath is the filesystem path of the document to analyze.
	DocumentPath string
	// ModelID selects the vendor model or processor. Empty selects the
	// vendor default where one exists (Azure); Google has no default and
	// rejects an empty id.
	ModelID string
}

// DocumentAnalyzer abstracts a vendor document-analysis client. Analyze
// blocks for the full remote round trip, including any internal polling.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisResult, error)
	Service() string
}
