package types

import "github.com/killallgit/marathon-api/internal/models"

// SetModeRequest switches marathon mode. ClearDraft only applies when
// leaving the mode; when omitted the server's configured policy is used.
type SetModeRequest struct {
	Active     *bool `json:"active" binding:"required" example:"false"`
	ClearDraft *bool `json:"clear_draft,omitempty" example:"true"`
}

// SaveDraftRequest names the draft being saved
type SaveDraftRequest struct {
	Name string `json:"name" binding:"required" example:"Horror Night"`
}

// UpdateMarathonRequest renames a marathon; a present movies list replaces
// the saved one, an absent list leaves it unchanged
type UpdateMarathonRequest struct {
	Name   string               `json:"name" binding:"required" example:"Horror Night 2"`
	Movies []models.MovieRecord `json:"movies,omitempty"`
}
