package marathons

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
	"github.com/killallgit/marathon-api/internal/models"
)

// GetByID returns one saved marathon
// @Summary      Get saved marathon
// @Description  Returns a saved marathon. The movie list can be ordered for display without changing the stored order.
// @Tags         marathons
// @Produce      json
// @Param        id    path  string true  "Marathon ID"
// @Param        sort  query string false "Sort key" Enums(title, release_date, vote_average, runtime, popularity)
// @Param        order query string false "Sort order" Enums(asc, desc) default(asc)
// @Success      200 {object} types.MarathonResponse
// @Failure      400 {object} types.ErrorResponse "Invalid sort"
// @Failure      404 {object} types.ErrorResponse "Marathon not found"
// @Router       /api/v1/marathons/{id} [get]
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := deps.Engine.GetMarathon(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		if sortParam := c.Query("sort"); sortParam != "" {
			key, err := models.ParseSortKey(sortParam)
			if err != nil {
				types.SendError(c, err)
				return
			}
			order, err := models.ParseSortOrder(c.Query("order"))
			if err != nil {
				types.SendError(c, err)
				return
			}
			if m.Movies, err = models.SortMovies(m.Movies, key, order); err != nil {
				types.SendError(c, err)
				return
			}
		}

		types.SendSuccess(c, types.NewMarathonResponse(*m, "Marathon"))
	}
}
