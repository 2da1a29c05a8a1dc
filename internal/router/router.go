// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/catalog-importer/internal/config"
	"github.com/javajoker/catalog-importer/internal/handlers"
	"github.com/javajoker/catalog-importer/internal/metrics"
	"github.com/javajoker/catalog-importer/internal/middleware"
)

func Initialize(cfg *config.Config, enqueuer handlers.ImportEnqueuer, runs handlers.ImportRunFinder, logger logrus.FieldLogger) *gin.Engine {
	importHandler := handlers.NewImportHandler(enqueuer, runs, logger)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	imports := r.Group("/import")
	{
		imports.POST("", middleware.ImportRateLimit(), importHandler.StartBulkImport)
		imports.POST("/scrape", middleware.ImportRateLimit(), importHandler.StartScrape)
		imports.GET("/runs/:id", importHandler.GetRun)
	}

	return r
}
