package marathons

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// Update renames a saved marathon and optionally replaces its movies
// @Summary      Update saved marathon
// @Description  Renames a marathon. When movies is present it replaces the stored list; when absent the list is kept.
// @Tags         marathons
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Marathon ID"
// @Param        request body types.UpdateMarathonRequest true "New name and optional movies"
// @Success      200 {object} types.MarathonResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Failure      404 {object} types.ErrorResponse "Marathon not found"
// @Failure      409 {object} types.ErrorResponse "Name already used"
// @Router       /api/v1/marathons/{id} [put]
func Update(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.UpdateMarathonRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		m, err := deps.Engine.UpdateMarathon(c.Request.Context(), c.Param("id"), req.Name, req.Movies)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.NewMarathonResponse(*m, "Marathon updated"))
	}
}
