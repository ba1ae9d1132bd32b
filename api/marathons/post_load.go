package marathons

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// Load replaces the current draft with a saved marathon
// @Summary      Load saved marathon into draft
// @Description  Replaces the current draft with a copy of the saved marathon's movies. Marathon mode is unchanged.
// @Tags         marathons
// @Produce      json
// @Param        id path string true "Marathon ID"
// @Success      200 {object} types.DraftResponse
// @Failure      404 {object} types.ErrorResponse "Marathon not found"
// @Router       /api/v1/marathons/{id}/load [post]
func Load(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Engine.LoadMarathon(c.Request.Context(), c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.NewDraftResponse(deps.Engine.Draft().State(), "Marathon loaded"))
	}
}
