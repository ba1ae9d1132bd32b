package marathons

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// Delete removes a saved marathon
// @Summary      Delete saved marathon
// @Description  Removes a saved marathon. Deleting an unknown id succeeds. The current draft is not touched.
// @Tags         marathons
// @Param        id path string true "Marathon ID"
// @Success      204
// @Failure      503 {object} types.ErrorResponse "Storage unavailable"
// @Router       /api/v1/marathons/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Engine.DeleteMarathon(c.Request.Context(), c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
