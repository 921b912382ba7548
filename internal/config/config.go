package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	AppEnv     string
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string

	// DatasetPath points at the school JSON document. Empty uses the embedded copy.
	DatasetPath    string
	SchoolName     string
	SchoolSystem   string
	SchoolTimezone string

	// DispatchDriver selects the delivery channel: webhook, sendgrid or log.
	DispatchDriver    string
	WebhookURL        string
	WebhookTimeout    time.Duration
	SendgridAPIKey    string
	SendgridFromEmail string
	SendgridFromName  string

	// RedisURL enables the shared dispatch rate limiter. Empty keeps it in-process.
	RedisURL          string
	DispatchRateLimit int

	RollbarToken string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error, .env is optional

	return &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "pretty"),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		DatasetPath:       getEnv("DATASET_PATH", ""),
		SchoolName:        getEnv("SCHOOL_NAME", "EduConnect School"),
		SchoolSystem:      getEnv("SCHOOL_SYSTEM", "ProjectEduConnect"),
		SchoolTimezone:    getEnv("SCHOOL_TIMEZONE", "America/Sao_Paulo"),
		DispatchDriver:    strings.ToLower(getEnv("DISPATCH_DRIVER", "webhook")),
		WebhookURL:        getEnv("WEBHOOK_URL", "https://marcelmelo.app.n8n.cloud/webhook-test/b5d40ed8-186d-4028-b84a-2c2f63532f07"),
		WebhookTimeout:    time.Duration(getEnvInt("WEBHOOK_TIMEOUT_SECONDS", 10)) * time.Second,
		SendgridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendgridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "noreply@educonnect.local"),
		SendgridFromName:  getEnv("SENDGRID_FROM_NAME", "EduConnect School"),
		RedisURL:          getEnv("REDIS_URL", ""),
		DispatchRateLimit: getEnvInt("DISPATCH_RATE_LIMIT", 30),
		RollbarToken:      getEnv("ROLLBAR_TOKEN", ""),
	}
}

// Location resolves SchoolTimezone, falling back to UTC when it is unknown.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.SchoolTimezone)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
