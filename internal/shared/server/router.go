package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"exitplan-backend/internal/advisor"
	"exitplan-backend/internal/recommendations"
	"exitplan-backend/internal/services/health"
	"exitplan-backend/internal/shared/config"
	"exitplan-backend/internal/shared/metrics"
	"exitplan-backend/internal/shared/server/middleware"
	"exitplan-backend/internal/shared/server/respond"
)

const (
	rateLimitGroupDefault = "DEFAULT"
	rateLimitGroupEnhance = "ENHANCE"
)

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config                 config.Config
	Health                 *health.Service
	RecommendationsHandler *recommendations.Handler
	AdvisorHandler         *advisor.Handler
	RateLimiter            *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Forwarding headers are honoured only from Config.TrustedProxies; with none
// configured the client IP is the connection's remote address.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		metrics.Middleware(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, deps.Health.Status())
	})

	if deps.RecommendationsHandler != nil {
		limited := api.Group("")
		limited.Use(middleware.RateLimit(enhanceRateLimit(deps)))
		deps.RecommendationsHandler.RegisterRoutes(limited)
	}

	if deps.AdvisorHandler != nil && deps.Config.AdminRoutesEnabled {
		admin := api.Group("/admin")
		deps.AdvisorHandler.RegisterAdminRoutes(admin)
	}

	return r, nil
}

// enhanceRateLimit limits every recommendation route per client IP. The
// enhance-only route gets its own bucket.
func enhanceRateLimit(deps RouterDeps) middleware.RateLimitConfig {
	rule := middleware.RateLimitRule{
		Rate:  deps.Config.EnhanceRatePerSecond,
		Burst: deps.Config.EnhanceRateBurst,
	}
	return middleware.RateLimitConfig{
		DefaultGroup: rateLimitGroupDefault,
		Limiter:      deps.RateLimiter,
		GroupFor: func(c *gin.Context) string {
			if c.FullPath() == "/api/v1"+recommendations.EnhancePath {
				return rateLimitGroupEnhance
			}
			return rateLimitGroupDefault
		},
		Rules: map[string]middleware.RateLimitRule{
			rateLimitGroupDefault: rule,
			rateLimitGroupEnhance: rule,
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
