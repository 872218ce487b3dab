package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the gateway
type Config struct {
	// HTTP Configuration
	HTTP HTTPConfig

	// Upstream backend API Configuration
	Backend BackendConfig

	// Session Configuration
	Session SessionConfig

	// SMTP Configuration
	SMTP SMTPConfig

	// Database Configuration (local submission log)
	Database DatabaseConfig

	// Logging Configuration
	Logging LoggingConfig

	// Feature flags
	ShowSignup bool
}

// HTTPConfig holds the server listen address and CORS settings
type HTTPConfig struct {
	Addr          string
	AllowedOrigin string
}

// BackendConfig holds the upstream backend API configuration
type BackendConfig struct {
	BaseURL string        // Prefix for all proxied paths
	Timeout time.Duration // Per-request upstream timeout
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	Secret        string        // HMAC secret for session tokens
	TTL           time.Duration // Session lifetime
	RefreshWindow time.Duration // Re-mint tokens expiring within this window
	ClientRole    string        // Role required for the customer dashboard
	AdminRole     string        // Role required for operator endpoints
}

// SMTPConfig holds mail relay configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string // Default recipient for form submissions
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL           string
	RetentionDays int    // Prune submission records older than this
	RetentionCron string // Cron expression for the retention sweep
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	addr := getEnv("HTTP_ADDR", ":8080")

	// Backend base URL - prefix for every proxied path
	backendURL := strings.TrimRight(getEnv("BACKEND_API_URL", "http://localhost:3000"), "/")

	proxyTimeout, err := getDuration("PROXY_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	sessionTTL, err := getDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	refreshWindow, err := getDuration("SESSION_REFRESH_WINDOW", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	smtpPort, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	retentionDays, err := getInt("RETENTION_DAYS", 90)
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTP: HTTPConfig{
			Addr:          addr,
			AllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		},
		Backend: BackendConfig{
			BaseURL: backendURL,
			Timeout: proxyTimeout,
		},
		Session: SessionConfig{
			Secret:        os.Getenv("SESSION_SECRET"),
			TTL:           sessionTTL,
			RefreshWindow: refreshWindow,
			ClientRole:    getEnv("CLIENT_ROLE", "client"),
			AdminRole:     getEnv("ADMIN_ROLE", "admin"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "no-reply@surfaceplanner.com"),
			To:       getEnv("EMAIL_TO", "bookings@surfaceplanner.com"),
		},
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", "surfaced.sqlite"),
			RetentionDays: retentionDays,
			RetentionCron: getEnv("RETENTION_CRON", "0 3 * * *"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		ShowSignup: getBool("SHOW_SIGNUP", false),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
