// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir      string // Base directory for the database and backup staging (always absolute)
	Port         int
	LogLevel     string
	DevMode      bool
	QuoteTimeout time.Duration // Upper bound on a single provider call

	YahooAPIKey string // x-api-key for the Yahoo Finance quote endpoint
	YahooAPIURL string // Quote endpoint base URL (overridable for tests/proxies)

	Backup BackupConfig
}

// BackupConfig holds scheduled database backup configuration.
// Backups are disabled when Bucket is empty.
type BackupConfig struct {
	Bucket          string
	Prefix          string
	Endpoint        string // Optional S3-compatible endpoint (e.g. Cloudflare R2)
	Region          string
	AccessKeyID     string // Static credentials; the default AWS chain is used when empty
	SecretAccessKey string
	Schedule        string // cron spec, defaults to nightly
}

// Enabled reports whether scheduled backups are configured.
func (b BackupConfig) Enabled() bool {
	return b.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Resolve the data directory to an absolute path and make sure it exists.
	dataDir := getEnv("ROCKETFIN_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory to absolute path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	port, err := getEnvInt("PORT", 5000)
	if err != nil {
		return nil, err
	}

	quoteTimeoutSecs, err := getEnvInt("QUOTE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	if quoteTimeoutSecs <= 0 {
		return nil, fmt.Errorf("QUOTE_TIMEOUT_SECONDS must be positive, got %d", quoteTimeoutSecs)
	}

	cfg := &Config{
		DataDir:      absDataDir,
		Port:         port,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DevMode:      getEnvBool("DEV_MODE", false),
		QuoteTimeout: time.Duration(quoteTimeoutSecs) * time.Second,
		YahooAPIKey:  getEnv("YAHOO_FINANCE_API_KEY", ""),
		YahooAPIURL:  getEnv("YAHOO_API_URL", "https://yfapi.net/v6/finance/quote"),
		Backup: BackupConfig{
			Bucket:          getEnv("BACKUP_S3_BUCKET", ""),
			Prefix:          getEnv("BACKUP_S3_PREFIX", "backups"),
			Endpoint:        getEnv("BACKUP_S3_ENDPOINT", ""),
			Region:          getEnv("BACKUP_S3_REGION", "auto"),
			AccessKeyID:     getEnv("BACKUP_S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("BACKUP_S3_SECRET_ACCESS_KEY", ""),
			Schedule:        getEnv("BACKUP_SCHEDULE", "0 0 3 * * *"),
		},
	}

	return cfg, nil
}

// DatabasePath returns the SQLite database file location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "rocketfin.db")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return parsed, nil
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
