package handler

import (
	"github.com/gin-gonic/gin"

	"docintel/internal/service"
)

// HealthHandler serves liveness probes with vendor availability.
type HealthHandler struct {
	comparisons service.ComparisonService
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(comparisons service.ComparisonService) *HealthHandler {
	return &HealthHandler{comparisons: comparisons}
}

// Liveness reports process health and which vendor clients are configured.
func (h *HealthHandler) Liveness(c *gin.Context) {
	RespondOK(c, gin.H{
		"status":           "ok",
		"azure_available":  h.comparisons.AzureAvailable(),
		"google_available": h.comparisons.GoogleAvailable(),
	})
}
