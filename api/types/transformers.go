package types

import "github.com/killallgit/marathon-api/internal/models"

// NewDraftResponse builds the response body for a draft state
func NewDraftResponse(state models.MarathonState, message string) DraftResponse {
	total := models.TotalRuntime(state.Movies)
	return DraftResponse{
		BaseResponse: BaseResponse{Status: StatusOK, Message: message},
		Movies:       state.Movies,
		MarathonMode: state.MarathonMode,
		Count:        len(state.Movies),
		TotalRuntime: total,
		Duration:     models.FormatDuration(total),
	}
}

// NewMarathonSummary condenses a saved marathon for list responses
func NewMarathonSummary(m models.Marathon) MarathonSummary {
	total := m.TotalRuntime()
	return MarathonSummary{
		ID:           m.ID,
		Name:         m.Name,
		MovieCount:   len(m.Movies),
		TotalRuntime: total,
		Duration:     models.FormatDuration(total),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// NewMarathonResponse builds the response body for one saved marathon
func NewMarathonResponse(m models.Marathon, message string) MarathonResponse {
	total := m.TotalRuntime()
	return MarathonResponse{
		BaseResponse: BaseResponse{Status: StatusOK, Message: message},
		Marathon:     m,
		TotalRuntime: total,
		Duration:     models.FormatDuration(total),
	}
}
