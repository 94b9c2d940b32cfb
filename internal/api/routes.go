package api

import (
	"os"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/elcastillomagic/card-pricer/internal/api/handlers"
	"github.com/elcastillomagic/card-pricer/internal/config"
	"github.com/elcastillomagic/card-pricer/internal/metrics"
	"github.com/elcastillomagic/card-pricer/internal/services"
)

func SetupRouter(cfg *config.Config, pipeline *services.Pipeline, scryfall *services.ScryfallClient, db *gorm.DB) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or use defaults
	corsConfig := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.Use(observeRequests())

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(cfg, pipeline, scryfall)
	snapshotHandler := handlers.NewSnapshotHandler(db)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/quote", quoteHandler.Quote)

		runs := api.Group("/runs")
		{
			runs.GET("/latest", snapshotHandler.GetLatestRun)
		}
		api.GET("/snapshots", snapshotHandler.ListSnapshots)
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router
}

// observeRequests records per-route request counts for Prometheus.
func observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" || path == "/metrics" {
			return
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
