package draft

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
	"github.com/killallgit/marathon-api/internal/models"
)

// Events streams draft states as server-sent events
// @Summary      Stream draft changes
// @Description  Server-sent events stream. The first "state" event is the current draft; one follows every change. A slow client only receives the newest state.
// @Tags         draft
// @Produce      text/event-stream
// @Success      200 {object} models.MarathonState
// @Router       /api/v1/draft/events [get]
func Events(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		states := make(chan models.MarathonState, 1)
		unsubscribe := deps.Engine.Draft().Subscribe(func(s models.MarathonState) {
			select {
			case states <- s:
			default:
				// Replace the undelivered state with the newer one
				select {
				case <-states:
				default:
				}
				states <- s
			}
		})
		defer unsubscribe()

		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		ctx := c.Request.Context()
		c.Stream(func(w io.Writer) bool {
			select {
			case <-ctx.Done():
				return false
			case s := <-states:
				c.SSEvent("state", s)
				return true
			}
		})
	}
}
