package draft

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// SetMode switches marathon mode
// @Summary      Set marathon mode
// @Description  Enters or leaves marathon mode. When leaving, clear_draft decides whether the draft is emptied; it defaults to the server's marathon.clear_on_exit setting.
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        mode body types.SetModeRequest true "Mode change"
// @Success      200 {object} types.DraftResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Router       /api/v1/draft/mode [put]
func SetMode(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SetModeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		draft := deps.Engine.Draft()
		if *req.Active {
			draft.SetMode(true)
			types.SendSuccess(c, types.NewDraftResponse(draft.State(), "Marathon mode on"))
			return
		}

		clearDraft := deps.ClearDraftOnExit()
		if req.ClearDraft != nil {
			clearDraft = *req.ClearDraft
		}
		draft.ExitMarathonMode(clearDraft)
		types.SendSuccess(c, types.NewDraftResponse(draft.State(), "Marathon mode off"))
	}
}
