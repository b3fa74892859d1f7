package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// Make.com webhook relay
	MakeWebhookURL     string
	WebhookTimeout     time.Duration
	WebhookSource      string
	DuplicateWindow    time.Duration
	IdempotencyWindow  time.Duration
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	GuardCacheMaxSize  int
	AdminJWTSecret     string
	CORSAllowedOrigins []string

	// Optional shared guard state for multi-instance deployments
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Optional submission persistence
	DatabaseURL string

	// Operator alerts on webhook delivery failure
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	AlertEmail        string
}

// ErrMissingWebhookURL is returned by Validate when MAKE_WEBHOOK_URL is
// unset.
var ErrMissingWebhookURL = errors.New("config: MAKE_WEBHOOK_URL is required")

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		MakeWebhookURL:     getEnv("MAKE_WEBHOOK_URL", ""),
		WebhookTimeout:     getEnvAsDuration("MAKE_WEBHOOK_TIMEOUT", 30*time.Second),
		WebhookSource:      getEnv("WEBHOOK_SOURCE", "smartpro-consultation-form"),
		DuplicateWindow:    getEnvAsDuration("DUPLICATE_WINDOW", 5*time.Minute),
		IdempotencyWindow:  getEnvAsDuration("WEBHOOK_DEDUP_WINDOW", 10*time.Minute),
		RateLimitRequests:  getEnvAsInt("RATE_LIMIT_REQUESTS", 2),
		RateLimitWindow:    getEnvAsDuration("RATE_LIMIT_WINDOW", time.Second),
		GuardCacheMaxSize:  getEnvAsInt("GUARD_CACHE_MAX_SIZE", 1000),
		AdminJWTSecret:     getEnv("ADMIN_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "SmartPro Intake"),
		AlertEmail:        getEnv("ALERT_EMAIL", ""),
	}
}

// Validate checks that required configuration is present. The webhook URL
// has no default; a missing target fails startup instead of forwarding
// leads to a stale endpoint.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.MakeWebhookURL) == "" {
		return ErrMissingWebhookURL
	}
	if c.RateLimitRequests <= 0 {
		return errors.New("config: RATE_LIMIT_REQUESTS must be positive")
	}
	if c.DuplicateWindow <= 0 || c.IdempotencyWindow <= 0 {
		return errors.New("config: guard windows must be positive")
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
