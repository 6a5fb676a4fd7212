package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"exitplan-backend/internal/shared/metrics"
	"exitplan-backend/internal/shared/server/respond"
	"exitplan-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 envelope carrying the request id,
// so the caller can quote it when reporting the failure.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			reqID := RequestIDFromContext(c)
			metrics.RecordPanic(route)
			telemetry.Error("http.panic", map[string]any{
				"request_id": reqID,
				"route":      route,
				"method":     c.Request.Method,
				"error":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			})
			var details any
			if reqID != "" {
				details = map[string]string{"requestId": reqID}
			}
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Unexpected server error", details)
		}()
		c.Next()
	}
}
