package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/huffzip/huffzip/internal/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config, log zerolog.Logger) {
	router.Use(requestLogger(log))

	// CORS middleware for public API access
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	h := NewHandler(cfg, log)

	// Health check endpoint
	router.GET("/health", h.Health)

	// Service information endpoint
	router.GET("/info", h.Info)
	router.GET("/", h.Info) // Root endpoint shows info

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/compress", h.Compress)
		v1.POST("/decompress", h.Decompress)
		v1.GET("/info", h.Info)
		v1.GET("/health", h.Health)
	}

	// Legacy routes for backward compatibility
	router.POST("/compress", h.Compress)
	router.POST("/decompress", h.Decompress)
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
