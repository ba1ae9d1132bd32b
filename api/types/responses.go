package types

import (
	"time"

	"github.com/killallgit/marathon-api/internal/models"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// DraftResponse describes the current draft
type DraftResponse struct {
	BaseResponse
	Movies       []models.MovieRecord `json:"movies"`
	MarathonMode bool                 `json:"marathon_mode"`
	Count        int                  `json:"count"`
	TotalRuntime int                  `json:"total_runtime"` // Minutes
	Duration     string               `json:"duration" example:"3h 53m"`
}

// SaveDraftResponse carries the id of a newly saved marathon
type SaveDraftResponse struct {
	BaseResponse
	ID string `json:"id"`
}

// MarathonSummary is one entry of the saved marathon list
type MarathonSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MovieCount   int       `json:"movie_count"`
	TotalRuntime int       `json:"total_runtime"` // Minutes
	Duration     string    `json:"duration" example:"3h 53m"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MarathonsResponse lists saved marathons
type MarathonsResponse struct {
	BaseResponse
	Marathons []MarathonSummary `json:"marathons"`
	Count     int               `json:"count"`
}

// MarathonResponse returns a single saved marathon
type MarathonResponse struct {
	BaseResponse
	Marathon     models.Marathon `json:"marathon"`
	TotalRuntime int             `json:"total_runtime"`
	Duration     string          `json:"duration"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}
