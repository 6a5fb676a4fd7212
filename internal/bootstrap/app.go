package bootstrap

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"exitplan-backend/internal/advisor"
	"exitplan-backend/internal/llm"
	openai "exitplan-backend/internal/llm/openai"
	"exitplan-backend/internal/recommendations"
	"exitplan-backend/internal/services/health"
	"exitplan-backend/internal/shared/config"
	"exitplan-backend/internal/shared/server"
	"exitplan-backend/internal/shared/server/middleware"
	"exitplan-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config                 config.Config
	Router                 *gin.Engine
	LLM                    llm.Client
	Settings               *advisor.Settings
	Enhancer               *advisor.Enhancer
	RecommendationsService *recommendations.Service
	RecommendationsHandler *recommendations.Handler
	AdvisorHandler         *advisor.Handler
	Health                 *health.Service
}

// Option overrides a dependency, mainly for tests.
type Option func(*App)

// WithLLM replaces the provider client.
func WithLLM(client llm.Client) Option {
	return func(a *App) {
		a.LLM = client
	}
}

// Build wires the advisor, the recommendation feature and the router.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}

	app := &App{Config: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.LLM == nil {
		app.LLM = openai.NewClient(cfg.AdvisorTimeout)
	}

	settings, err := buildSettings(cfg)
	if err != nil {
		return nil, err
	}
	app.Settings = settings
	app.Enhancer = advisor.NewEnhancer(app.LLM)
	app.RecommendationsService = &recommendations.Service{
		Settings: app.Settings,
		Enhancer: app.Enhancer,
	}
	app.RecommendationsHandler = recommendations.NewHandler(app.RecommendationsService)
	app.AdvisorHandler = advisor.NewHandler(app.Settings)
	app.Health = health.NewService(app.Settings)

	if app.RecommendationsHandler == nil || app.AdvisorHandler == nil {
		return nil, errors.New("failed to initialize handlers")
	}

	router, err := server.NewRouter(server.RouterDeps{
		Config:                 app.Config,
		Health:                 app.Health,
		RecommendationsHandler: app.RecommendationsHandler,
		AdvisorHandler:         app.AdvisorHandler,
		RateLimiter:            middleware.NewRateLimiter(nil),
	})
	if err != nil {
		return nil, err
	}
	app.Router = router

	return app, nil
}

// buildSettings seeds the advisor from ADVISOR_* keys. A requested provider
// that fails validation is a startup error, not a silent disable.
func buildSettings(cfg config.Config) (*advisor.Settings, error) {
	settings := advisor.NewSettings(advisor.Disabled())
	if !cfg.AdvisorEnabled() {
		telemetry.Info("advisor.startup", map[string]any{"enabled": false})
		return settings, nil
	}
	if err := settings.Configure(cfg.AdvisorProvider, cfg.AdvisorOptions()); err != nil {
		return nil, fmt.Errorf("configure advisor %q: %w", cfg.AdvisorProvider, err)
	}
	snapshot := settings.Configuration()
	telemetry.Info("advisor.startup", map[string]any{
		"enabled":  snapshot.Enabled,
		"provider": snapshot.Provider,
		"model":    snapshot.Model,
	})
	return settings, nil
}
