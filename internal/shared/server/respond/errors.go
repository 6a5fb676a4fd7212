package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"exitplan-backend/internal/shared/telemetry"
)

// Error codes shared across handlers.
const (
	CodeInvalidRequest  = "invalid_request"
	CodePayloadTooLarge = "payload_too_large"
	CodeInternal        = "internal"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error aborts with the standardized envelope. Server errors log at error
// level, client errors at warn.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"route":      route,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if status >= http.StatusInternalServerError {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadBody reports a request body that could not be bound. Bodies cut off by
// http.MaxBytesReader get 413; everything else is a 400.
func BadBody(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Error(c, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Request body too large", map[string]int64{"limitBytes": tooLarge.Limit})
		return
	}
	Error(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid JSON body", nil)
}
