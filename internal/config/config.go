package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Reddit API credentials
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string

	// Analysis configuration
	FetchLimit int // max posts and comments fetched per user

	// Report storage configuration
	StorageBackend      string // "local" or "azure"
	OutputDir           string
	ReportRetentionDays int
	StorageAccount      string
	StorageContainer    string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "persona-bot/1.0"),

		FetchLimit: getIntEnv("FETCH_LIMIT", 100),

		StorageBackend:      getEnv("STORAGE_BACKEND", "local"),
		OutputDir:           getEnv("OUTPUT_DIR", "output"),
		ReportRetentionDays: getIntEnv("REPORT_RETENTION_DAYS", 7),
		StorageAccount:      getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer:    getEnv("AZURE_STORAGE_CONTAINER", "personas"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.RedditClientID == "" || c.RedditClientSecret == "" {
		return fmt.Errorf("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET are required")
	}

	if c.FetchLimit <= 0 {
		return fmt.Errorf("FETCH_LIMIT must be positive")
	}

	if c.StorageBackend != "local" && c.StorageBackend != "azure" {
		return fmt.Errorf("STORAGE_BACKEND must be 'local' or 'azure'")
	}

	if c.StorageBackend == "azure" && c.StorageAccount == "" {
		return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required when STORAGE_BACKEND is 'azure'")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
