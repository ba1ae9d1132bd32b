package marathons

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// RegisterRoutes registers saved-marathon routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", GetAll(deps))
	router.GET("/:id", GetByID(deps))
	router.PUT("/:id", Update(deps))
	router.DELETE("/:id", Delete(deps))
	router.POST("/:id/load", Load(deps))
}
