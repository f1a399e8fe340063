package api

import (
	"github.com/gin-gonic/gin"
	"github.com/proflens/proflens/api/handler"
	"github.com/proflens/proflens/api/middleware"
	"github.com/proflens/proflens/config"
	"github.com/proflens/proflens/service"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Status and debug endpoints sit outside auth so monitoring probes always
// work; artifact retrieval is also open since filenames are unguessable
// (timestamp + random component).
func NewRouter(svc *service.Supervisor, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Introspection — no auth required.
	v1.GET("/status", handler.Status(svc))
	v1.GET("/debug", handler.Debug(svc))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/analyze", handler.Analyze(svc))
	protected.POST("/quick-screenshot", handler.QuickScreenshot(svc))

	// Artifact retrieval with per-route extension allowlists.
	r.GET("/screenshot/:filename", handler.ServeArtifact(cfg.Capture.ScreenshotDir, ".png"))
	r.GET("/report/:filename", handler.ServeArtifact(cfg.Analysis.OutputDir, ".html"))
	r.GET("/analysis/:filename", handler.ServeArtifact(cfg.Analysis.OutputDir, ".json"))

	return r
}
