package advisor

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"exitplan-backend/internal/shared/server/respond"
	"exitplan-backend/internal/shared/telemetry"
)

// Handler exposes the admin configuration endpoints.
type Handler struct {
	Settings *Settings
}

// NewHandler constructs a Handler.
func NewHandler(settings *Settings) *Handler {
	return &Handler{Settings: settings}
}

// ConfigureRequest is the body of PUT /admin/advisor.
type ConfigureRequest struct {
	Provider       string   `json:"provider"`
	APIKey         string   `json:"apiKey"`
	Model          string   `json:"model"`
	BaseURL        string   `json:"baseURL"`
	MaxTokens      int      `json:"maxTokens"`
	Temperature    *float64 `json:"temperature"`
	TimeoutSeconds int      `json:"timeoutSeconds"`
}

// RegisterAdminRoutes wires the advisor admin endpoints onto the group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/advisor", h.Get)
	rg.PUT("/advisor", h.Configure)
	rg.DELETE("/advisor", h.Disable)
}

// Get returns the redacted configuration.
func (h *Handler) Get(c *gin.Context) {
	respond.OK(c, h.Settings.Configuration())
}

// Configure replaces the adapter configuration.
func (h *Handler) Configure(c *gin.Context) {
	var req ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadBody(c, err)
		return
	}
	opts := Options{
		APIKey:      req.APIKey,
		Model:       req.Model,
		BaseURL:     req.BaseURL,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.TimeoutSeconds > 0 {
		opts.Timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	if err := h.Settings.Configure(req.Provider, opts); err != nil {
		if isConfigError(err) {
			respond.Error(c, http.StatusBadRequest, "invalid_advisor_config", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "Unable to configure advisor", nil)
		return
	}

	cfg := h.Settings.Configuration()
	telemetry.Info("advisor.configured", map[string]any{
		"provider":   cfg.Provider,
		"model":      cfg.Model,
		"request_id": c.GetString("requestId"),
	})
	respond.OK(c, cfg)
}

// Disable turns enhancement off.
func (h *Handler) Disable(c *gin.Context) {
	h.Settings.Disable()
	telemetry.Info("advisor.disabled", map[string]any{
		"request_id": c.GetString("requestId"),
	})
	respond.OK(c, h.Settings.Configuration())
}

func isConfigError(err error) bool {
	return errors.Is(err, ErrUnknownProvider) ||
		errors.Is(err, ErrCredentialRequired) ||
		errors.Is(err, ErrBaseURLRequired) ||
		errors.Is(err, ErrModelRequired) ||
		errors.Is(err, ErrInvalidBaseURL)
}
