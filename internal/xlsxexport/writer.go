package xlsxexport

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"docintel/internal/csvexport"
	"docintel/internal/domain"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// Build renders a comparison report as an XLSX workbook: one Results sheet
// mirroring the CSV projection and one Summary sheet with run statistics.
func Build(report *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName(f.GetSheetName(0), resultsSheet)
	if err := writeResults(f, report.DetailedResults); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}
	if err := writeSummary(f, report); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeResults(f *excelize.File, records []domain.ComparisonRecord) error {
	header := make([]interface{}, len(csvexport.Columns))
	for i, c := range csvexport.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(resultsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i := range records {
		rec := &records[i]
		row := []interface{}{
			rec.DocumentPath,
			rec.Timestamp.Format(time.RFC3339),
		}
		row = append(row, vendorCells(rec.AzureResult)...)
		row = append(row, vendorCells(rec.GoogleResult)...)
		if pt := rec.Metrics.ProcessingTime; pt != nil {
			row = append(row, pt.FasterService, pt.TimeDifference)
		} else {
			row = append(row, "", "")
		}

		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(resultsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return nil
}

// vendorCells yields the five per-vendor columns, blank for an absent or
// errored vendor result.
func vendorCells(r *domain.VendorResult) []interface{} {
	if !r.Succeeded() {
		return []interface{}{"", "", "", "", ""}
	}
	a := r.Analysis
	return []interface{}{
		a.ProcessingTimeSeconds,
		len(a.TextContent),
		len(a.Tables),
		a.ConfidenceScores.Average,
		a.PageCount,
	}
}

func writeSummary(f *excelize.File, report *domain.Report) error {
	rows := [][]interface{}{
		{"generated_at", report.GeneratedAt.Format(time.RFC3339)},
	}

	s := report.Summary
	if s.Message != "" {
		rows = append(rows, []interface{}{"message", s.Message})
	} else {
		rows = append(rows,
			[]interface{}{"total_documents", s.TotalDocuments},
			[]interface{}{"successful_comparisons", s.SuccessfulComparisons},
		)
		if s.Performance != nil {
			rows = append(rows,
				[]interface{}{"azure_avg_time", s.Performance.AzureAvgTime},
				[]interface{}{"google_avg_time", s.Performance.GoogleAvgTime},
				[]interface{}{"azure_fastest_count", s.Performance.AzureFastestCount},
				[]interface{}{"google_fastest_count", s.Performance.GoogleFastestCount},
			)
		}
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	return nil
}
