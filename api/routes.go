package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/marathon-api/api/draft"
	"github.com/killallgit/marathon-api/api/health"
	"github.com/killallgit/marathon-api/api/marathons"
	"github.com/killallgit/marathon-api/api/types"
	"github.com/killallgit/marathon-api/api/version"
	_ "github.com/killallgit/marathon-api/docs/swagger"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil || deps.Engine == nil {
		return fmt.Errorf("marathon engine is not configured")
	}

	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")
	limit := rateLimit(deps, rateLimiters, cleanupStop, cleanupInitialized)

	draftGroup := v1.Group("/draft")
	draftGroup.Use(limit)
	draft.RegisterRoutes(draftGroup, deps)

	marathonGroup := v1.Group("/marathons")
	marathonGroup.Use(limit)
	marathons.RegisterRoutes(marathonGroup, deps)

	return nil
}

// rateLimit builds the per-client limiter from config; disabled limiting
// passes every request through
func rateLimit(deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) gin.HandlerFunc {
	rps, burst := 10, 20
	if cfg := deps.Config; cfg != nil {
		if !cfg.RateLimiting.Enabled {
			return func(c *gin.Context) { c.Next() }
		}
		if cfg.RateLimiting.RequestsPerSecond > 0 {
			rps = cfg.RateLimiting.RequestsPerSecond
		}
		if cfg.RateLimiting.Burst > 0 {
			burst = cfg.RateLimiting.Burst
		}
	}
	return PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, rps, burst)
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
