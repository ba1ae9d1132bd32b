package draft

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// RegisterRoutes registers current-draft routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
	router.DELETE("", Clear(deps))
	router.POST("/movies", AddMovie(deps))
	router.DELETE("/movies/:id", RemoveMovie(deps))
	router.PUT("/mode", SetMode(deps))
	router.POST("/save", Save(deps))
	router.GET("/events", Events(deps))
}
