package marathons

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// GetAll lists saved marathons
// @Summary      List saved marathons
// @Description  Returns every saved marathon in creation order with its movie count and total duration
// @Tags         marathons
// @Produce      json
// @Success      200 {object} types.MarathonsResponse
// @Failure      503 {object} types.ErrorResponse "Storage unavailable"
// @Router       /api/v1/marathons [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := deps.Engine.ListMarathons(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}

		summaries := make([]types.MarathonSummary, 0, len(list))
		for _, m := range list {
			summaries = append(summaries, types.NewMarathonSummary(m))
		}

		types.SendSuccess(c, types.MarathonsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Saved marathons"},
			Marathons:    summaries,
			Count:        len(summaries),
		})
	}
}
