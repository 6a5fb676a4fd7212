package advisor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"exitplan-backend/internal/llm/openai"
)

// Provider kinds understood by Configure.
const (
	ProviderAskSara      = "ask-sara"
	ProviderEmergentSara = "emergent-sara"
	ProviderOpenAI       = "openai"
)

// Generation defaults.
const (
	AssistantName          = "Ask Sara"
	DefaultModel           = "sara-business-advisor"
	DefaultMaxOutputTokens = 2000
	DefaultTemperature     = 0.7
	DefaultTimeout         = 120 * time.Second
)

var (
	ErrUnknownProvider    = errors.New("advisor provider is required")
	ErrCredentialRequired = errors.New("advisor credential is required")
	ErrBaseURLRequired    = errors.New("advisor base url is required")
	ErrModelRequired      = errors.New("advisor model is required")
	ErrInvalidBaseURL     = errors.New("advisor base url is invalid")
)

// Config is an immutable snapshot of the adapter configuration. Enabled implies
// Provider and Credential are set.
type Config struct {
	Enabled         bool
	Provider        string
	Model           string
	Credential      string
	BaseURL         string
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
}

// Options are the caller-supplied settings for Configure. Zero values select
// the provider defaults.
type Options struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature *float64
	Timeout     time.Duration
}

// Redacted is the configuration view that is safe to return to clients.
type Redacted struct {
	Enabled       bool   `json:"enabled"`
	Provider      string `json:"provider,omitempty"`
	Model         string `json:"model,omitempty"`
	Assistant     string `json:"aiAssistant"`
	HasCredential bool   `json:"hasCredential"`
}

// Disabled returns the zero-provider configuration with generation defaults.
func Disabled() Config {
	return Config{
		MaxOutputTokens: DefaultMaxOutputTokens,
		Temperature:     DefaultTemperature,
		Timeout:         DefaultTimeout,
	}
}

// NewConfig resolves provider defaults and validates the result.
func NewConfig(kind string, opts Options) (Config, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return Config{}, ErrUnknownProvider
	}
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return Config{}, ErrCredentialRequired
	}

	cfg := Disabled()
	cfg.Enabled = true
	cfg.Provider = kind
	cfg.Credential = apiKey
	cfg.Model = strings.TrimSpace(opts.Model)
	cfg.BaseURL = strings.TrimSpace(opts.BaseURL)

	switch kind {
	case ProviderAskSara, ProviderEmergentSara:
		if cfg.Model == "" {
			cfg.Model = DefaultModel
		}
	case ProviderOpenAI:
		if cfg.BaseURL == "" {
			cfg.BaseURL = openai.DefaultBaseURL
		}
	}
	if cfg.Model == "" {
		return Config{}, ErrModelRequired
	}
	if cfg.BaseURL == "" {
		return Config{}, ErrBaseURLRequired
	}
	if err := validateBaseURL(cfg.BaseURL); err != nil {
		return Config{}, err
	}

	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = opts.MaxTokens
	}
	if opts.Temperature != nil {
		cfg.Temperature = *opts.Temperature
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	return cfg, nil
}

// Redact hides the credential.
func (c Config) Redact() Redacted {
	return Redacted{
		Enabled:       c.Enabled,
		Provider:      c.Provider,
		Model:         c.Model,
		Assistant:     AssistantName,
		HasCredential: c.Credential != "",
	}
}

// ready reports whether an enabled config can reach a provider.
func (c Config) ready() error {
	var missing []string
	if strings.TrimSpace(c.Provider) == "" {
		missing = append(missing, "provider")
	}
	if strings.TrimSpace(c.Credential) == "" {
		missing = append(missing, "credential")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		missing = append(missing, "base url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return nil
}
