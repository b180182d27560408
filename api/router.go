// Package api exposes the extraction core over HTTP.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/linkextract/api/handler"
	"github.com/use-agent/linkextract/api/middleware"
	"github.com/use-agent/linkextract/cache"
	"github.com/use-agent/linkextract/cleaner"
	"github.com/use-agent/linkextract/config"
	"github.com/use-agent/linkextract/extractor"
	"github.com/use-agent/linkextract/fetcher"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(d *extractor.Dispatcher, f *fetcher.Fetcher, cl *cleaner.Cleaner, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Structured extraction (instagram / schema.org / web dispatch).
	protected.POST("/extract", handler.Extract(d, cc))

	// Readable-content cleaning (readability → markdown/html/text).
	protected.POST("/clean", handler.Clean(f, cl, cc))

	return r
}
