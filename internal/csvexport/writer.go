package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docintel/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the CSV header row: one flat row per comparison record.
// Vendor columns stay blank when that vendor's result is absent or errored.
var Columns = []string{
	"document_path",
	"timestamp",
	"azure_processing_time",
	"azure_text_length",
	"azure_tables_count",
	"azure_avg_confidence",
	"azure_page_count",
	"google_processing_time",
	"google_text_length",
	"google_tables_count",
	"google_avg_confidence",
	"google_page_count",
	"faster_service",
	"time_difference",
}

// Writer wraps csv.Writer for exporting comparison records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteRecords converts comparison records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.ComparisonRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// recordToRow flattens one comparison record. Vendor columns are filled
// only for successful vendor results.
func recordToRow(rec *domain.ComparisonRecord) []string {
	row := make([]string, len(Columns))
	row[0] = rec.DocumentPath
	row[1] = rec.Timestamp.Format(time.RFC3339)

	if rec.AzureResult.Succeeded() {
		a := rec.AzureResult.Analysis
		row[2] = formatSeconds(a.ProcessingTimeSeconds)
		row[3] = strconv.Itoa(len(a.TextContent))
		row[4] = strconv.Itoa(len(a.Tables))
		row[5] = formatConfidence(a.ConfidenceScores.Average)
		row[6] = strconv.Itoa(a.PageCount)
	}

	if rec.GoogleResult.Succeeded() {
		g := rec.GoogleResult.Analysis
		row[7] = formatSeconds(g.ProcessingTimeSeconds)
		row[8] = strconv.Itoa(len(g.TextContent))
		row[9] = strconv.Itoa(len(g.Tables))
		row[10] = formatConfidence(g.ConfidenceScores.Average)
		row[11] = strconv.Itoa(g.PageCount)
	}

	if pt := rec.Metrics.ProcessingTime; pt != nil {
		row[12] = pt.FasterService
		row[13] = formatSeconds(pt.TimeDifference)
	}

	return row
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func formatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a run name for use in filenames and
// Content-Disposition headers. Replaces non-alphanumeric chars (except - _)
// with _, collapses consecutive underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized, dated filename with the given extension.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
