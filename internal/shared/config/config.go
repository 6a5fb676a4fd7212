package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"exitplan-backend/internal/advisor"
)

// Config holds application configuration.
type Config struct {
	Port                 string
	Env                  string
	CORSAllowOrigin      []string
	TrustedProxies       []string
	AdvisorProvider      string
	AdvisorAPIKey        string
	AdvisorModel         string
	AdvisorBaseURL       string
	AdvisorMaxTokens     int
	AdvisorTemperature   float64
	AdvisorTimeout       time.Duration
	EnhanceRatePerSecond float64
	EnhanceRateBurst     int
	AdminRoutesEnabled   bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	if files := loadEnvFiles(".env", "cmd/.env"); len(files) > 0 {
		log.Printf("config: loaded env files %s", strings.Join(files, ", "))
	}

	env := normalizeEnv(getEnv("ENV", "dev"))

	return Config{
		Port:                 getEnv("PORT", "8080"),
		Env:                  env,
		CORSAllowOrigin:      splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		TrustedProxies:       splitAndTrim(os.Getenv("TRUSTED_PROXIES")),
		AdvisorProvider:      strings.ToLower(strings.TrimSpace(os.Getenv("ADVISOR_PROVIDER"))),
		AdvisorAPIKey:        strings.TrimSpace(os.Getenv("ADVISOR_API_KEY")),
		AdvisorModel:         getEnv("ADVISOR_MODEL", ""),
		AdvisorBaseURL:       getEnv("ADVISOR_BASE_URL", ""),
		AdvisorMaxTokens:     getEnvInt("ADVISOR_MAX_TOKENS", advisor.DefaultMaxOutputTokens),
		AdvisorTemperature:   getEnvFloat("ADVISOR_TEMPERATURE", advisor.DefaultTemperature),
		AdvisorTimeout:       time.Duration(getEnvInt("ADVISOR_TIMEOUT_SECONDS", int(advisor.DefaultTimeout/time.Second))) * time.Second,
		EnhanceRatePerSecond: getEnvFloat("ENHANCE_RATE_PER_SECOND", 1),
		EnhanceRateBurst:     getEnvInt("ENHANCE_RATE_BURST", 5),
		AdminRoutesEnabled:   getEnvBool("ADMIN_ROUTES_ENABLED", env != "production"),
	}
}

// AdvisorEnabled reports whether a provider was requested at startup.
func (c Config) AdvisorEnabled() bool {
	return c.AdvisorProvider != ""
}

// AdvisorOptions maps the ADVISOR_* keys onto advisor configure options.
func (c Config) AdvisorOptions() advisor.Options {
	temperature := c.AdvisorTemperature
	return advisor.Options{
		APIKey:      c.AdvisorAPIKey,
		Model:       c.AdvisorModel,
		BaseURL:     c.AdvisorBaseURL,
		MaxTokens:   c.AdvisorMaxTokens,
		Temperature: &temperature,
		Timeout:     c.AdvisorTimeout,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		log.Printf("config: invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %v", key, raw, def)
		return def
	}
	return b
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
