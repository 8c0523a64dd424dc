package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Loyalty backend
	BackendURL          string
	BackendServiceToken string // token the promotion poller uses, no user session attached

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	CacheTTL              time.Duration
	PromotionPollInterval time.Duration

	// Sessions / Auth
	JWTSecret  string
	SessionTTL time.Duration

	// Preferences
	PreferencesPath string

	// Observability
	OTLPEndpoint string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		BackendURL:          getEnv("BACKEND_URL", "http://localhost:3001"),
		BackendServiceToken: getEnv("BACKEND_SERVICE_TOKEN", ""),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),

		CacheTTL:              getEnvDuration("CACHE_TTL", 5*time.Minute),
		PromotionPollInterval: getEnvDuration("PROMOTION_POLL_INTERVAL", 15*time.Second),

		JWTSecret:  getEnv("JWT_SECRET", "pontos-default-dev-secret-change-me"),
		SessionTTL: getEnvDuration("SESSION_TTL", 8*time.Hour),

		PreferencesPath: getEnv("PREFERENCES_PATH", "data/preferences.json"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
