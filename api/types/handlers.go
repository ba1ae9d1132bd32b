package types

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler utility functions to reduce duplication across handlers

// ParseInt64Param extracts and parses a URL parameter as int64
// Returns the parsed value and sends error response if parsing fails
func ParseInt64Param(c *gin.Context, paramName string) (int64, bool) {
	paramStr := c.Param(paramName)
	value, err := strconv.ParseInt(paramStr, 10, 64)
	if err != nil {
		SendBadRequest(c, "Invalid "+paramName)
		return 0, false
	}
	return value, true
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Status:  StatusError,
			Message: "Invalid request body",
			Error:   "INVALID_INPUT",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// SendBadRequest sends a standardized bad request response
func SendBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: StatusError, Message: message})
}

// SendNotFound sends a standardized not found response
func SendNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Status: StatusError, Message: message})
}

// SendInternalError sends a standardized internal server error response
func SendInternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Status: StatusError, Message: message})
}

// SendError maps a service error to its status code and error body
func SendError(c *gin.Context, err error) {
	appErr := ToAppError(err)
	c.JSON(appErr.GetHTTPCode(), ErrorResponse{
		Status:  StatusError,
		Message: appErr.Message,
		Error:   string(appErr.Code),
		Details: appErr.Details,
	})
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
