package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBDriver string
	DBConn   string
	LogLevel string

	JWTSecret string

	RecurringCron  string
	RolloverCron   string
	AllocationCron string
	Location       *time.Location

	// MaxConsecutiveFailures is the failure count at which a recurring
	// template is moved to the failed status.
	MaxConsecutiveFailures int

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables. Values from a
// .env file in the working directory are applied first when it exists.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DBConn:         getEnv("DB_CONN", "host=localhost port=5432 user=budget password=budget dbname=budgethub sslmode=disable"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		RecurringCron:  getEnv("RECURRING_CRON", "0 2 * * *"),
		RolloverCron:   getEnv("ROLLOVER_CRON", "5 0 1 * *"),
		AllocationCron: getEnv("ALLOCATION_CRON", "10 0 1 * *"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "noreply@budgethub.local"),
	}

	maxFailures, err := strconv.Atoi(getEnv("MAX_CONSECUTIVE_FAILURES", "3"))
	if err != nil || maxFailures < 1 {
		return nil, fmt.Errorf("MAX_CONSECUTIVE_FAILURES must be a positive integer")
	}
	cfg.MaxConsecutiveFailures = maxFailures

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}
	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// EmailEnabled reports whether outgoing email is configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
