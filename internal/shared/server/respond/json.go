package respond

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitedBody is the 429 payload. It is flat, unlike ErrorResponse, so
// clients can read retryAfterMs without unwrapping.
type RateLimitedBody struct {
	Error        string `json:"error"`
	RetryAfterMs int    `json:"retryAfterMs"`
}

// OK writes a 200 JSON response.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RateLimited aborts with 429 and a Retry-After header rounded up to whole
// seconds. A non-positive wait is reported as one second.
func RateLimited(c *gin.Context, retryAfter time.Duration) {
	ms := int(retryAfter / time.Millisecond)
	if ms <= 0 {
		ms = 1000
	}
	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(float64(ms)/1000.0))))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, RateLimitedBody{
		Error:        "rate_limited",
		RetryAfterMs: ms,
	})
}
