package draft

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// Get returns the current draft
// @Summary      Get current marathon draft
// @Description  Returns the movies of the in-progress marathon, marathon mode and total duration
// @Tags         draft
// @Produce      json
// @Success      200 {object} types.DraftResponse
// @Router       /api/v1/draft [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, types.NewDraftResponse(deps.Engine.Draft().State(), "Current marathon"))
	}
}
