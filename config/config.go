package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// API Configuration
	APIPort        string
	APIHost        string
	APIEnvironment string

	// Upstream leads API
	UpstreamURL     string
	UpstreamTimeout time.Duration

	// Redis (locally persisted preference sets)
	RedisURL string

	// Sessions
	SessionTTLHours int

	// CORS
	CORSAllowedOrigins []string

	// Rate Limiting
	RateLimitRequestsPerMinute int
	RateLimitBurst             int

	// Sentry
	SentryDSN         string
	SentryEnvironment string

	// Logging
	LogLevel string

	// CSV upload
	MaxUploadBytes int64
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// API
		APIPort:        getEnv("API_PORT", "8080"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		APIEnvironment: getEnv("API_ENVIRONMENT", "development"),

		// Upstream
		UpstreamURL:     getEnv("UPSTREAM_URL", "http://localhost:8081"),
		UpstreamTimeout: time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		// Sessions
		SessionTTLHours: getEnvAsInt("SESSION_TTL_HOURS", 24),

		// CORS
		CORSAllowedOrigins: []string{
			getEnv("FRONTEND_URL", "http://localhost:5173"),
		},

		// Rate Limiting
		RateLimitRequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 60),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 10),

		// Sentry
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", getEnv("API_ENVIRONMENT", "development")),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// CSV upload (8 MiB default)
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_BYTES", 8<<20)),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
