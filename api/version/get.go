package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Set at build time with -ldflags "-X github.com/killallgit/marathon-api/api/version.Version=..."
var (
	Version   = "1.0.0"
	Commit    = "dev"
	BuildDate = "unknown"
)

// Get handles version requests
// @Summary      API version
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       / [get]
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Marathon API",
			"version":     Version,
			"commit":      Commit,
			"build_date":  BuildDate,
			"description": "API for building, saving and replaying movie marathons",
			"status":      "running",
		})
	}
}
