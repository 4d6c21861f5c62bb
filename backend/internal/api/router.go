// Package api exposes the match graph over HTTP for the dashboard.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"suitemate/backend/internal/matching"
	"suitemate/backend/internal/metrics"
	"suitemate/backend/pkg/logger"
)

// Options configures the router
type Options struct {
	AllowedOrigin string
	// Metrics is optional; /metrics is only served when it is set
	Metrics *metrics.Collector
}

type handlers struct {
	service *matching.Service
	logger  *zap.Logger
}

// NewRouter wires the HTTP routes for service
func NewRouter(service *matching.Service, opts Options) *gin.Engine {
	log := logger.Get()
	h := &handlers{service: service, logger: log}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(cors(opts.AllowedOrigin))
	if opts.Metrics != nil {
		router.Use(observe(opts.Metrics))
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.GET("/users/:id/matches", h.matches)
		api.GET("/users/:id/connections/:other", h.connection)
		api.POST("/matches", h.recordMatch)
		api.POST("/networks", h.importNetwork)
		api.GET("/network", h.network)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return router
}
