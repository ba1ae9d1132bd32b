package health

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
	"github.com/killallgit/marathon-api/internal/services/marathons"
	"github.com/killallgit/marathon-api/internal/services/storage"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports database and persistence store status, plus movie catalog counters when lookups are enabled. Returns 503 when the database or store is unreachable.
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      503 {object} map[string]interface{}
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := getDatabaseStatus(deps)
		storeStatus := getStorageStatus(c, deps)

		status := "healthy"
		code := http.StatusOK
		if dbStatus["status"] == "unhealthy" || storeStatus["status"] == "unhealthy" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		body := gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbStatus,
			"storage":   storeStatus,
		}
		if deps != nil && deps.Catalog != nil {
			body["catalog"] = deps.Catalog.Stats()
		}
		c.JSON(code, body)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}

// getStorageStatus checks the persistence store by reading the marathon list
func getStorageStatus(c *gin.Context, deps *types.Dependencies) gin.H {
	if deps == nil || deps.Store == nil {
		return gin.H{"status": "not configured"}
	}

	store := deps.Store
	result := gin.H{"status": "healthy"}

	if wb, ok := store.(*storage.WriteBehind); ok {
		result["pending"] = wb.Pending()
		store = wb.Backend()
	}

	if sp, ok := store.(storage.StatsProvider); ok {
		stats := sp.Stats()
		result["keys"] = stats.Keys
		result["size"] = stats.Size
		result["max_size"] = stats.MaxSize
		result["failures"] = stats.Failures
	}

	if _, err := store.Read(c.Request.Context(), marathons.MarathonsKey); err != nil && !errors.Is(err, storage.ErrNotFound) {
		result["status"] = "unhealthy"
		result["error"] = err.Error()
	}

	return result
}
