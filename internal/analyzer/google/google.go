package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docintel/internal/analyzer"
	"docintel/internal/config"
	"docintel/internal/domain"
	"docintel/internal/port"
)

// mimeTypes maps file extensions to the MIME types Document AI accepts.
// Unknown extensions deliberately fall back to PDF rather than failing.
var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

const defaultMimeType = "application/pdf"

// Analyzer implements port.DocumentAnalyzer against the Google Cloud
// Document AI v1 REST API. Unlike Azure there is no default processor: the
// processor id must be supplied explicitly.
type Analyzer struct {
	projectID   string
	location    string
	accessToken string
	endpoint    string
	client      *http.Client
}

// NewAnalyzer creates a Document AI analyzer from config.
func NewAnalyzer(cfg *config.GoogleConfig) *Analyzer {
	return newAnalyzer(cfg, "")
}

// NewAnalyzerWithEndpoint creates an analyzer pointing at a custom base
// endpoint (for testing).
func NewAnalyzerWithEndpoint(cfg *config.GoogleConfig, endpoint string) *Analyzer {
	return newAnalyzer(cfg, endpoint)
}

func newAnalyzer(cfg *config.GoogleConfig, endpoint string) *Analyzer {
	location := cfg.Location
	if location == "" {
		location = "us"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s-documentai.googleapis.com", location)
	}
	return &Analyzer{
		projectID:   cfg.ProjectID,
		location:    location,
		accessToken: cfg.AccessToken,
		endpoint:    strings.TrimRight(endpoint, "/"),
		client:      &http.Client{Timeout: timeout},
	}
}

// Service returns the vendor name recorded in results.
func (a *Analyzer) Service() string {
	return domain.ServiceGoogle
}

// Analyze processes the document with the given processor and normalizes
// the response into the common schema.
func (a *Analyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*domain.AnalysisResult, error) {
	processorID := input.ModelID
	if processorID == "" {
		return nil, domain.ErrProcessorIDRequired
	}

	start := time.Now()

	data, err := os.ReadFile(input.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc, err := a.process(ctx, processorID, data, mimeTypeFor(input.DocumentPath))
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start).Seconds()
	return normalize(doc, processorID, elapsed), nil
}

// AnalyzeImageText extracts text from an image via an OCR processor.
func (a *Analyzer) AnalyzeImageText(ctx context.Context, imagePath, processorID string) (*domain.AnalysisResult, error) {
	return a.Analyze(ctx, port.AnalyzeInput{DocumentPath: imagePath, ModelID: processorID})
}

// AnalyzeTableStructure analyzes table structure via a form/layout processor.
func (a *Analyzer) AnalyzeTableStructure(ctx context.Context, documentPath, processorID string) (*domain.AnalysisResult, error) {
	return a.Analyze(ctx, port.AnalyzeInput{DocumentPath: documentPath, ModelID: processorID})
}

func (a *Analyzer) process(ctx context.Context, processorID string, data []byte, mimeType string) (*document, error) {
	url := fmt.Sprintf("%s/v1/projects/%s/locations/%s/processors/%s:process",
		a.endpoint, a.projectID, a.location, processorID)

	reqBody := processRequest{
		RawDocument: rawDocument{
			Content:  base64.StdEncoding.EncodeToString(data),
			MimeType: mimeType,
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.accessToken)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling document AI API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document AI API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var pr processResponse
	if err := json.Unmarshal(respBody, &pr); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if pr.Document == nil {
		return nil, fmt.Errorf("document AI API returned no document")
	}
	return pr.Document, nil
}

// mimeTypeFor resolves a document's MIME type from its file extension,
// falling back to PDF for anything unrecognized.
func mimeTypeFor(path string) string {
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return defaultMimeType
}

// textFromLayout reconstructs a layout's text by slicing the full document
// text at each [start, end) anchor segment, concatenating the slices in
// order and trimming surrounding whitespace from the whole. A layout with
// no text anchor yields the empty string.
func textFromLayout(l *layout, fullText string) string {
	if l == nil || l.TextAnchor == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range l.TextAnchor.TextSegments {
		start, end := int(seg.StartIndex), int(seg.EndIndex)
		// Clamp against malformed anchors.
		if start < 0 {
			start = 0
		}
		if end > len(fullText) {
			end = len(fullText)
		}
		if start >= end {
			continue
		}
		b.WriteString(fullText[start:end])
	}
	return strings.TrimSpace(b.String())
}

// approximateRowCount estimates a table's row count by bucketing the start
// index of each first-body-row cell by 100 and counting distinct buckets.
// This mirrors the heuristic the comparison has always used; it is an
// approximation, not a guaranteed-correct count. trueRowCount is available
// where accuracy matters.
func approximateRowCount(t *table) int {
	if len(t.BodyRows) == 0 {
		return 0
	}
	buckets := make(map[int64]struct{})
	for _, c := range t.BodyRows[0].Cells {
		var start int64
		if c.Layout != nil && c.Layout.TextAnchor != nil && len(c.Layout.TextAnchor.TextSegments) > 0 {
			start = int64(c.Layout.TextAnchor.TextSegments[0].StartIndex)
		}
		buckets[start/100] = struct{}{}
	}
	return len(buckets)
}

// trueRowCount is the exact row count from the header/body row structure.
func trueRowCount(t *table) int {
	return len(t.HeaderRows) + len(t.BodyRows)
}

func columnCount(t *table) int {
	if len(t.HeaderRows) > 0 {
		return len(t.HeaderRows[0].Cells)
	}
	if len(t.BodyRows) > 0 {
		return len(t.BodyRows[0].Cells)
	}
	return 0
}

// normalize maps a Document AI document into the common schema. Header
// cells are emitted first with row indices 0..H-1; body cell row indices
// are offset by the header row count so the two ranges never collide.
// Confidence aggregation covers form-field values, body-row table cells and
// entities; header cells are excluded.
func normalize(doc *document, processorID string, elapsedSecs float64) *domain.AnalysisResult {
	var confidences []float64

	var tables []domain.Table
	var formFields []domain.KeyValuePair
	for _, pg := range doc.Pages {
		for i := range pg.Tables {
			t := &pg.Tables[i]
			var cells []domain.Cell

			for rowIdx, row := range t.HeaderRows {
				for colIdx, c := range row.Cells {
					conf := 0.0
					if c.Layout != nil {
						conf = c.Layout.Confidence
					}
					cells = append(cells, domain.Cell{
						Content:     textFromLayout(c.Layout, doc.Text),
						RowIndex:    rowIdx,
						ColumnIndex: colIdx,
						RowSpan:     1,
						ColumnSpan:  1,
						IsHeader:    true,
						Confidence:  &conf,
					})
				}
			}

			headerOffset := len(t.HeaderRows)
			for rowIdx, row := range t.BodyRows {
				for colIdx, c := range row.Cells {
					conf := 0.0
					if c.Layout != nil {
						conf = c.Layout.Confidence
						confidences = append(confidences, c.Layout.Confidence)
					}
					cells = append(cells, domain.Cell{
						Content:     textFromLayout(c.Layout, doc.Text),
						RowIndex:    rowIdx + headerOffset,
						ColumnIndex: colIdx,
						RowSpan:     1,
						ColumnSpan:  1,
						Confidence:  &conf,
					})
				}
			}

			tables = append(tables, domain.Table{
				RowCount:    approximateRowCount(t),
				ColumnCount: columnCount(t),
				Cells:       cells,
			})
		}

		for _, f := range pg.FormFields {
			conf := 0.0
			if f.FieldValue != nil {
				conf = f.FieldValue.Confidence
				confidences = append(confidences, f.FieldValue.Confidence)
			}
			formFields = append(formFields, domain.KeyValuePair{
				Key:        textFromLayout(f.FieldName, doc.Text),
				Value:      textFromLayout(f.FieldValue, doc.Text),
				Confidence: &conf,
			})
		}
	}

	entities := make([]domain.Entity, 0, len(doc.Entities))
	for _, e := range doc.Entities {
		normalized := ""
		if e.NormalizedValue != nil {
			normalized = e.NormalizedValue.Text
		}
		entities = append(entities, domain.Entity{
			Type:            e.Type,
			MentionText:     e.MentionText,
			Confidence:      e.Confidence,
			NormalizedValue: normalized,
		})
		confidences = append(confidences, e.Confidence)
	}

	if tables == nil {
		tables = []domain.Table{}
	}
	if formFields == nil {
		formFields = []domain.KeyValuePair{}
	}

	return &domain.AnalysisResult{
		Service:               domain.ServiceGoogle,
		ModelID:               processorID,
		ProcessingTimeSeconds: elapsedSecs,
		TextContent:           doc.Text,
		Tables:                tables,
		KeyValuePairs:         formFields,
		Entities:              entities,
		PageCount:             len(doc.Pages),
		ConfidenceScores:      analyzer.Summarize(confidences),
	}
}
