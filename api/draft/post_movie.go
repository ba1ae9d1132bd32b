package draft

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
	"github.com/killallgit/marathon-api/internal/models"
)

// AddMovie adds a movie to the draft
// @Summary      Add movie to draft
// @Description  Appends a movie to the current marathon. Incomplete records are completed from the catalog in the background. Adding a movie already in the draft is a no-op.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        movie body models.MovieRecord true "Movie record (id required)"
// @Success      201 {object} types.DraftResponse "Movie added"
// @Success      200 {object} types.DraftResponse "Movie already in draft"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Router       /api/v1/draft/movies [post]
func AddMovie(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var movie models.MovieRecord
		if !types.BindJSONOrError(c, &movie) {
			return
		}
		if movie.ID <= 0 {
			types.SendBadRequest(c, "Movie id is required")
			return
		}

		draft := deps.Engine.Draft()
		if !draft.Add(movie) {
			c.JSON(http.StatusOK, types.NewDraftResponse(draft.State(), "Movie already in marathon"))
			return
		}
		types.SendCreated(c, types.NewDraftResponse(draft.State(), "Movie added"))
	}
}
