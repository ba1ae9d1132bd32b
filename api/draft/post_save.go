package draft

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/marathon-api/api/types"
)

// Save stores the draft as a named marathon
// @Summary      Save draft as marathon
// @Description  Saves the current draft under a unique, case-insensitive name and clears the draft
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        request body types.SaveDraftRequest true "Marathon name"
// @Success      201 {object} types.SaveDraftResponse
// @Failure      400 {object} types.ErrorResponse "Blank name"
// @Failure      409 {object} types.ErrorResponse "Name already used"
// @Failure      422 {object} types.ErrorResponse "Draft is empty"
// @Failure      503 {object} types.ErrorResponse "Storage unavailable"
// @Router       /api/v1/draft/save [post]
func Save(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SaveDraftRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		id, err := deps.Engine.SaveDraft(c.Request.Context(), req.Name)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.SaveDraftResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Marathon saved"},
			ID:           id,
		})
	}
}
