package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studybuddy/internal/apperr"
	"studybuddy/internal/models"
)

// Error codes exposed to clients
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
)

func respondSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, models.APIResponse{
		Success:  true,
		Data:     data,
		Metadata: responseMetadata(c),
	})
}

func respondError(c *gin.Context, statusCode int, code string, message string, details interface{}) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error: &models.ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
		Metadata: responseMetadata(c),
	})
}

// respondBindError reports a malformed or invalid request body
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request format", err.Error())
}

// respondServiceError maps a service error to 404 or 500, e.g. "Error creating quiz: <cause>"
func respondServiceError(c *gin.Context, action string, err error) {
	_ = c.Error(err)

	status := apperr.HTTPStatus(err)
	code := CodeInternalError
	if status == http.StatusNotFound {
		code = CodeNotFound
	}
	respondError(c, status, code, fmt.Sprintf("Error %s: %v", action, err), nil)
}

func responseMetadata(c *gin.Context) models.Metadata {
	return models.Metadata{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: c.GetString("request_id"),
	}
}
