package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"docintel/internal/csvexport"
	"docintel/internal/domain"
	"docintel/internal/service"
)

// ReportHandler serves report artifacts: the JSON report inline, the CSV
// projection as a download, and sink-backed exports.
type ReportHandler struct {
	comparisons service.ComparisonService
	exports     service.ExportService
	log         *logrus.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(comparisons service.ComparisonService, exports service.ExportService, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{comparisons: comparisons, exports: exports, log: log}
}

// Report returns the full run report as JSON.
func (h *ReportHandler) Report(c *gin.Context) {
	report := h.comparisons.Report()
	if len(report.DetailedResults) == 0 {
		HandleError(c, h.log, domain.ErrNoResults)
		return
	}
	RespondOK(c, report)
}

// ReportCSV streams the CSV projection of the run history as a download.
func (h *ReportHandler) ReportCSV(c *gin.Context) {
	history := h.comparisons.History()
	if len(history) == 0 {
		HandleError(c, h.log, domain.ErrNoResults)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, h.log, err)
		return
	}
	if err := w.WriteRecords(history); err != nil {
		HandleError(c, h.log, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, h.log, err)
		return
	}

	filename := csvexport.BuildFilename("comparison_results", "csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportRequest is the body for POST /report/export.
type ExportRequest struct {
	Format string `json:"format" binding:"required"`
	Name   string `json:"name"`
}

// Export writes a report artifact to the configured sink and returns its
// location. Format is one of json, csv, xlsx.
func (h *ReportHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format is required (json, csv, or xlsx)")
		return
	}

	var (
		location string
		err      error
	)
	switch req.Format {
	case "json":
		location, err = h.exports.WriteReport(c.Request.Context(), req.Name)
	case "csv":
		location, err = h.exports.WriteCSV(c.Request.Context(), req.Name)
	case "xlsx":
		location, err = h.exports.WriteXLSX(c.Request.Context(), req.Name)
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be json, csv, or xlsx")
		return
	}
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, gin.H{"location": location})
}
