package draft

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// RemoveMovie removes a movie from the draft
// @Summary      Remove movie from draft
// @Description  Removes a movie from the current marathon. Removing a movie that is not in the draft succeeds.
// @Tags         draft
// @Produce      json
// @Param        id path int64 true "Movie ID"
// @Success      200 {object} types.DraftResponse
// @Failure      400 {object} types.ErrorResponse "Invalid movie ID"
// @Router       /api/v1/draft/movies/{id} [delete]
func RemoveMovie(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		movieID, ok := types.ParseInt64Param(c, "id")
		if !ok {
			return
		}

		draft := deps.Engine.Draft()
		draft.Remove(movieID)
		types.SendSuccess(c, types.NewDraftResponse(draft.State(), "Movie removed"))
	}
}

// Clear empties the draft
// @Summary      Clear draft
// @Description  Removes every movie from the current marathon
// @Tags         draft
// @Produce      json
// @Success      200 {object} types.DraftResponse
// @Router       /api/v1/draft [delete]
func Clear(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		draft := deps.Engine.Draft()
		draft.Clear()
		types.SendSuccess(c, types.NewDraftResponse(draft.State(), "Current marathon cleared"))
	}
}
