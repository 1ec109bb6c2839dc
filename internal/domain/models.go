package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Service name constants used in AnalysisResult.Service and in the
// faster_service comparison field.
const (
	ServiceAzure  = "Azure Document Intelligence"
	ServiceGoogle = "Google Cloud Document AI"

	FasterAzure  = "Azure"
	FasterGoogle = "Google"
)

// ConfidenceSummary aggregates a flat set of confidence scores.
// All zero when no scored elements existed.
type ConfidenceSummary struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Cell is a single table cell in the common schema. RowSpan and ColumnSpan
// default to 1 for vendors without a span concept. IsHeader is only ever
// true for vendors that distinguish header rows (Google).
type Cell struct {
	Content     string   `json:"content"`
	RowIndex    int      `json:"row_index"`
	ColumnIndex int      `json:"column_index"`
	RowSpan     int      `json:"row_span"`
	ColumnSpan  int      `json:"column_span"`
	IsHeader    bool     `json:"is_header"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// Table is a detected table in the common schema.
type Table struct {
	RowCount    int    `json:"row_count"`
	ColumnCount int    `json:"column_count"`
	Cells       []Cell `json:"cells"`
}

// KeyValuePair is an extracted key-value (or form-field) pair.
type KeyValuePair struct {
	Key        string   `json:"key"`
	Value      string   `json:"value"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// Paragraph is an Azure-only side channel: a paragraph of text with an
// optional semantic role (title, sectionHeading, footnote, ...).
type Paragraph struct {
	Content string `json:"content"`
	Role    string `json:"role,omitempty"`
}

// Entity is a Google-only side channel: a structured extraction produced by
// specialized processors (invoice, receipt, ...).
type Entity struct {
	Type            string  `json:"type"`
	MentionText     string  `json:"mention_text"`
	Confidence      float64 `json:"confidence"`
	NormalizedValue string  `json:"normalized_value"`
}

// AnalysisResult is the common schema both vendor analyzers normalize into.
type AnalysisResult struct {
	Service string `json:"service"`
	ModelID string `json:"model_or_processor_id"`
	// ProcessingTimeSeconds is wall-clock duration of the full remote call,
	// including network transfer, vendor queueing and (for Azure) the
	// poll-until-done loop. It is not pure compute time.
	ProcessingTimeSeconds float64           `json:"processing_time_seconds"`
	TextContent           string            `json:"text_content"`
	Tables                []Table           `json:"tables"`
	KeyValuePairs         []KeyValuePair    `json:"key_value_pairs"`
	Paragraphs            []Paragraph       `json:"paragraphs,omitempty"`
	Entities              []Entity          `json:"entities,omitempty"`
	PageCount             int               `json:"page_count"`
	ConfidenceScores      ConfidenceSummary `json:"confidence_scores"`
}

// VendorResult is one vendor's slot in a comparison: either a successful
// AnalysisResult or an error message, never both. It marshals to the
// analysis object on success and to {"error": "..."} on failure.
type VendorResult struct {
	Analysis *AnalysisResult
	Err      string
}

// Succeeded reports whether the slot holds a successful analysis.
func (r *VendorResult) Succeeded() bool {
	return r != nil && r.Err == "" && r.Analysis != nil
}

func (r VendorResult) MarshalJSON() ([]byte, error) {
	if r.Err != "" {
		return json.Marshal(map[string]string{"error": r.Err})
	}
	return json.Marshal(r.Analysis)
}

func (r *VendorResult) UnmarshalJSON(data []byte) error {
	var probe struct {
		Error   string `json:"error"`
		Service string `json:"service"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Error != "" && probe.Service == "" {
		r.Err = probe.Error
		r.Analysis = nil
		return nil
	}
	r.Err = ""
	r.Analysis = &AnalysisResult{}
	return json.Unmarshal(data, r.Analysis)
}

// ProcessingTimeMetrics compares wall-clock processing times.
type ProcessingTimeMetrics struct {
	Azure          float64 `json:"azure"`
	Google         float64 `json:"google"`
	FasterService  string  `json:"faster_service"`
	TimeDifference float64 `json:"time_difference"`
}

// TextExtractionMetrics compares extracted text lengths.
type TextExtractionMetrics struct {
	AzureTextLength  int `json:"azure_text_length"`
	GoogleTextLength int `json:"google_text_length"`
	LengthDifference int `json:"length_difference"`
}

// TableDetectionMetrics compares detected table counts.
type TableDetectionMetrics struct {
	AzureTablesCount  int `json:"azure_tables_count"`
	GoogleTablesCount int `json:"google_tables_count"`
	TablesDifference  int `json:"tables_difference"`
}

// ConfidenceComparisonMetrics compares confidence summaries side by side.
type ConfidenceComparisonMetrics struct {
	AzureAvgConfidence  float64 `json:"azure_avg_confidence"`
	GoogleAvgConfidence float64 `json:"google_avg_confidence"`
	AzureMinConfidence  float64 `json:"azure_min_confidence"`
	GoogleMinConfidence float64 `json:"google_min_confidence"`
	AzureMaxConfidence  float64 `json:"azure_max_confidence"`
	GoogleMaxConfidence float64 `json:"google_max_confidence"`
}

// FormExtractionMetrics compares key-value pair / form field counts.
type FormExtractionMetrics struct {
	AzureKeyValuePairs   int `json:"azure_key_value_pairs"`
	GoogleFormFields     int `json:"google_form_fields"`
	ExtractionDifference int `json:"extraction_difference"`
}

// ComparisonMetrics holds cross-vendor metrics. All sections are present
// when both vendor calls succeeded; otherwise every section is nil and the
// struct marshals to an empty object.
type ComparisonMetrics struct {
	ProcessingTime   *ProcessingTimeMetrics       `json:"processing_time,omitempty"`
	TextExtraction   *TextExtractionMetrics       `json:"text_extraction,omitempty"`
	TableDetection   *TableDetectionMetrics       `json:"table_detection,omitempty"`
	ConfidenceScores *ConfidenceComparisonMetrics `json:"confidence_scores,omitempty"`
	FormExtraction   *FormExtractionMetrics       `json:"form_extraction,omitempty"`
}

// Computed reports whether metrics were derived (both vendors succeeded).
func (m *ComparisonMetrics) Computed() bool {
	return m != nil && m.ProcessingTime != nil
}

// ComparisonRecord is one compare invocation. A nil vendor slot means that
// vendor was unavailable (not configured); a slot with Err set means the
// vendor call failed. Records are append-only once created.
type ComparisonRecord struct {
	ID           uuid.UUID         `json:"id"`
	DocumentPath string            `json:"document_path"`
	Timestamp    time.Time         `json:"timestamp"`
	AzureResult  *VendorResult     `json:"azure_result"`
	GoogleResult *VendorResult     `json:"google_result"`
	Metrics      ComparisonMetrics `json:"comparison_metrics"`
}

// BothSucceeded reports whether both vendor slots hold successful analyses.
func (r *ComparisonRecord) BothSucceeded() bool {
	return r.AzureResult.Succeeded() && r.GoogleResult.Succeeded()
}

// PerformanceSummary aggregates processing times over successful comparisons.
type PerformanceSummary struct {
	AzureAvgTime       float64 `json:"azure_avg_time"`
	GoogleAvgTime      float64 `json:"google_avg_time"`
	AzureFastestCount  int     `json:"azure_fastest_count"`
	GoogleFastestCount int     `json:"google_fastest_count"`
}

// RunSummary summarizes a run. When no comparison had both vendors succeed,
// only Message is set and the numeric fields are omitted entirely.
type RunSummary struct {
	Message               string              `json:"message,omitempty"`
	TotalDocuments        int                 `json:"total_documents,omitempty"`
	SuccessfulComparisons int                 `json:"successful_comparisons,omitempty"`
	Performance           *PerformanceSummary `json:"performance_summary,omitempty"`
}

// Report is the JSON-serializable report artifact for a run.
type Report struct {
	Summary         RunSummary         `json:"summary"`
	DetailedResults []ComparisonRecord `json:"detailed_results"`
	GeneratedAt     time.Time          `json:"generated_at"`
}
