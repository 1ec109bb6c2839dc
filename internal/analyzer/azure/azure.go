package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"docintel/internal/analyzer"
	"docintel/internal/config"
	"docintel/internal/domain"
	"docintel/internal/port"
)

// Prebuilt model ids.
const (
	ModelLayout = "prebuilt-layout"
	ModelRead   = "prebuilt-read"
)

const terminalSucceeded = "succeeded"
const terminalFailed = "failed"

// Analyzer implements port.DocumentAnalyzer against the Azure Document
// Intelligence REST API. The async analyze + poll flow is collapsed inside
// Analyze: callers see a single blocking call.
type Analyzer struct {
	endpoint   string
	apiKey     string
	modelID    string
	apiVersion string
	pollEvery  time.Duration
	client     *http.Client
}

// NewAnalyzer creates an Azure analyzer from config.
func NewAnalyzer(cfg *config.AzureConfig) *Analyzer {
	return newAnalyzer(cfg, cfg.Endpoint)
}

// NewAnalyzerWithEndpoint creates an analyzer pointing at a custom base
// endpoint (for testing).
func NewAnalyzerWithEndpoint(cfg *config.AzureConfig, endpoint string) *Analyzer {
	return newAnalyzer(cfg, endpoint)
}

func newAnalyzer(cfg *config.AzureConfig, endpoint string) *Analyzer {
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = ModelLayout
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "2024-11-30"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 300 * time.Second
	}
	pollEvery := time.Duration(cfg.PollIntervalMS) * time.Millisecond
	if pollEvery == 0 {
		pollEvery = 2 * time.Second
	}
	return &Analyzer{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     cfg.APIKey,
		modelID:    modelID,
		apiVersion: apiVersion,
		pollEvery:  pollEvery,
		client:     &http.Client{Timeout: timeout},
	}
}

// Service returns the vendor name recorded in results.
func (a *Analyzer) Service() string {
	return domain.ServiceAzure
}

// Analyze submits the document, polls the operation to completion and
// normalizes the response. ProcessingTimeSeconds covers the whole of that,
// network and vendor queueing included.
func (a *Analyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*domain.AnalysisResult, error) {
	modelID := input.ModelID
	if modelID == "" {
		modelID = a.modelID
	}

	start := time.Now()

	data, err := os.ReadFile(input.DocumentPath)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	opURL, err := a.submit(ctx, modelID, data)
	if err != nil {
		return nil, err
	}

	result, err := a.pollUntilDone(ctx, opURL)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start).Seconds()
	return normalize(result, modelID, elapsed), nil
}

// AnalyzeImageText extracts text from an image using the OCR-only model.
func (a *Analyzer) AnalyzeImageText(ctx context.Context, imagePath string) (*domain.AnalysisResult, error) {
	return a.Analyze(ctx, port.AnalyzeInput{DocumentPath: imagePath, ModelID: ModelRead})
}

// AnalyzeTableStructure analyzes table structure using the layout model.
func (a *Analyzer) AnalyzeTableStructure(ctx context.Context, documentPath string) (*domain.AnalysisResult, error) {
	return a.Analyze(ctx, port.AnalyzeInput{DocumentPath: documentPath, ModelID: ModelLayout})
}

// submit posts the document bytes and returns the operation URL to poll.
func (a *Analyzer) submit(ctx context.Context, modelID string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/documentintelligence/documentModels/%s:analyze?api-version=%s",
		a.endpoint, modelID, a.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling azure analyze API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading analyze response: %w", err)
	}

	if resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("azure analyze API error (status %d): %s", resp.StatusCode, string(body))
	}

	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return "", fmt.Errorf("azure analyze API returned no Operation-Location header")
	}
	return opURL, nil
}

// pollUntilDone polls the operation URL until it reaches a terminal status.
func (a *Analyzer) pollUntilDone(ctx context.Context, opURL string) (*analyzeResult, error) {
	for {
		op, err := a.getOperation(ctx, opURL)
		if err != nil {
			return nil, err
		}

		switch op.Status {
		case terminalSucceeded:
			if op.AnalyzeResult == nil {
				return nil, fmt.Errorf("azure operation succeeded without analyzeResult")
			}
			return op.AnalyzeResult, nil
		case terminalFailed:
			if op.Error != nil {
				return nil, fmt.Errorf("azure analysis failed: %s: %s", op.Error.Code, op.Error.Message)
			}
			return nil, fmt.Errorf("azure analysis failed")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.pollEvery):
		}
	}
}

func (a *Analyzer) getOperation(ctx context.Context, opURL string) (*analyzeOperation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating poll request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polling azure operation: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading poll response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("azure poll error (status %d): %s", resp.StatusCode, string(body))
	}

	var op analyzeOperation
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("unmarshaling poll response: %w", err)
	}
	return &op, nil
}

// normalize maps an analyzeResult into the common schema. Table and cell
// coordinates come straight off the wire; spans default to 1 when the API
// omits them. Confidence aggregation covers key-value pairs and table cells
// only, not paragraphs.
func normalize(result *analyzeResult, modelID string, elapsedSecs float64) *domain.AnalysisResult {
	var confidences []float64

	tables := make([]domain.Table, 0, len(result.Tables))
	for _, t := range result.Tables {
		cells := make([]domain.Cell, 0, len(t.Cells))
		for _, c := range t.Cells {
			rowSpan := c.RowSpan
			if rowSpan == 0 {
				rowSpan = 1
			}
			colSpan := c.ColumnSpan
			if colSpan == 0 {
				colSpan = 1
			}
			cells = append(cells, domain.Cell{
				Content:     c.Content,
				RowIndex:    c.RowIndex,
				ColumnIndex: c.ColumnIndex,
				RowSpan:     rowSpan,
				ColumnSpan:  colSpan,
				Confidence:  c.Confidence,
			})
			if c.Confidence != nil {
				confidences = append(confidences, *c.Confidence)
			}
		}
		tables = append(tables, domain.Table{
			RowCount:    t.RowCount,
			ColumnCount: t.ColumnCount,
			Cells:       cells,
		})
	}

	kvPairs := make([]domain.KeyValuePair, 0, len(result.KeyValuePairs))
	for _, kv := range result.KeyValuePairs {
		key, value := "", ""
		if kv.Key != nil {
			key = kv.Key.Content
		}
		if kv.Value != nil {
			value = kv.Value.Content
		}
		kvPairs = append(kvPairs, domain.KeyValuePair{
			Key:        key,
			Value:      value,
			Confidence: kv.Confidence,
		})
		if kv.Confidence != nil {
			confidences = append(confidences, *kv.Confidence)
		}
	}

	paragraphs := make([]domain.Paragraph, 0, len(result.Paragraphs))
	for _, p := range result.Paragraphs {
		paragraphs = append(paragraphs, domain.Paragraph{
			Content: p.Content,
			Role:    p.Role,
		})
	}

	return &domain.AnalysisResult{
		Service:               domain.ServiceAzure,
		ModelID:               modelID,
		ProcessingTimeSeconds: elapsedSecs,
		TextContent:           result.Content,
		Tables:                tables,
		KeyValuePairs:         kvPairs,
		Paragraphs:            paragraphs,
		PageCount:             len(result.Pages),
		ConfidenceScores:      analyzer.Summarize(confidences),
	}
}
