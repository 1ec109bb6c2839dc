package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"docintel/internal/handler"
	"docintel/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	compareH *handler.CompareHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
	log *logrus.Logger,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.POST("/compare", compareH.Compare)
	v1.POST("/compare/batch", compareH.Batch)
	v1.GET("/comparisons", compareH.History)
	v1.GET("/summary", compareH.Summary)
	v1.GET("/report", reportH.Report)
	v1.GET("/report/csv", reportH.ReportCSV)
	v1.POST("/report/export", reportH.Export)

	return r
}
