package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"docintel/internal/service"
)

// CompareHandler exposes the comparison engine over HTTP.
type CompareHandler struct {
	comparisons service.ComparisonService
	log         *logrus.Logger
}

// NewCompareHandler creates a CompareHandler.
func NewCompareHandler(comparisons service.ComparisonService, log *logrus.Logger) *CompareHandler {
	return &CompareHandler{comparisons: comparisons, log: log}
}

// CompareRequest is the body for POST /compare.
type CompareRequest struct {
	DocumentPath      string `json:"document_path" binding:"required"`
	AzureModelID      string `json:"azure_model_id"`
	GoogleProcessorID string `json:"google_processor_id"`
}

// BatchRequest is the body for POST /compare/batch.
type BatchRequest struct {
	Directory         string `json:"directory" binding:"required"`
	AzureModelID      string `json:"azure_model_id"`
	GoogleProcessorID string `json:"google_processor_id"`
}

// Compare runs both vendors against a single document.
func (h *CompareHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_path is required")
		return
	}

	rec, err := h.comparisons.Compare(c.Request.Context(), req.DocumentPath, service.CompareOptions{
		AzureModelID:      req.AzureModelID,
		GoogleProcessorID: req.GoogleProcessorID,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, rec)
}

// Batch runs both vendors against every supported file in a directory.
func (h *CompareHandler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "directory is required")
		return
	}

	records, err := h.comparisons.Batch(c.Request.Context(), req.Directory, service.CompareOptions{
		AzureModelID:      req.AzureModelID,
		GoogleProcessorID: req.GoogleProcessorID,
	})
	if err != nil {
		HandleError(c, h.log, err)
		return
	}
	RespondOK(c, records)
}

// History returns every recorded comparison in this process's run.
func (h *CompareHandler) History(c *gin.Context) {
	RespondOK(c, h.comparisons.History())
}

// Summary returns run statistics over successful comparisons.
func (h *CompareHandler) Summary(c *gin.Context) {
	RespondOK(c, h.comparisons.Summary())
}
