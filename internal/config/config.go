package config

import (
	"os"
	"strconv"

	"playpulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig
	Server    ServerConfig
	Analytics AnalyticsConfig
	Reports   ReportConfig
}

// DataConfig holds dataset file locations
type DataConfig struct {
	AppsFile    string
	ReviewsFile string
	SheetName   string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// AnalyticsConfig holds tunables for the dashboard assembly
type AnalyticsConfig struct {
	TopN                    int
	PopularInstallThreshold int64
}

// ReportConfig holds report export settings
type ReportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it.
// Entry points call godotenv.Load before Load so a local .env is honoured.
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			AppsFile:    getEnvOrDefault("APPS_FILE", ""),
			ReviewsFile: getEnvOrDefault("REVIEWS_FILE", ""),
			SheetName:   getEnvOrDefault("SHEET_NAME", "Sheet1"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Analytics: AnalyticsConfig{
			TopN:                    getEnvIntOrDefault("TOP_N", 10),
			PopularInstallThreshold: getEnvInt64OrDefault("POPULAR_INSTALLS", 1_000_000),
		},
		Reports: ReportConfig{
			Dir: getEnvOrDefault("REPORT_DIR", "./reports"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks the invariants the rest of the application relies on
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if c.Analytics.TopN <= 0 {
		return errors.ConfigInvalid("TOP_N must be positive")
	}
	if c.Analytics.PopularInstallThreshold <= 0 {
		return errors.ConfigInvalid("POPULAR_INSTALLS must be positive")
	}
	if c.Data.SheetName == "" {
		return errors.ConfigInvalid("SHEET_NAME must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
