package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backend identifiers
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds application configuration
type Config struct {
	TelegramToken        string
	MasterPasswordDigest string
	StorageBackend       string
	DataDir              string
	DatabasePath         string
	DebugUserID          int64
	LogLevel             string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	masterDigest := os.Getenv("MASTER_PASSWORD_DIGEST")
	if masterDigest == "" {
		return nil, fmt.Errorf("MASTER_PASSWORD_DIGEST environment variable is required")
	}
	if !isHexDigest(masterDigest) {
		return nil, fmt.Errorf("invalid MASTER_PASSWORD_DIGEST: must be a 40-character hex SHA-1 digest")
	}

	cfg := &Config{
		TelegramToken:        token,
		MasterPasswordDigest: masterDigest,
	}

	cfg.StorageBackend = cfg.LookupEnvOrString("STORAGE_BACKEND", BackendFile)
	if cfg.StorageBackend != BackendFile && cfg.StorageBackend != BackendSQLite {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND '%s': must be '%s' or '%s'", cfg.StorageBackend, BackendFile, BackendSQLite)
	}

	cfg.DataDir = cfg.LookupEnvOrString("DATA_DIR", "./data")
	cfg.DatabasePath = cfg.LookupEnvOrString("DATABASE_PATH", "./data/bot.db")
	cfg.LogLevel = cfg.LookupEnvOrString("LOG_LEVEL", "INFO")

	// Optional: user ID allowed to dump raw state via /debug
	debugIDStr := os.Getenv("DEBUG_USER_ID")
	if debugIDStr != "" {
		debugID, err := strconv.ParseInt(debugIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG_USER_ID '%s': %w", debugIDStr, err)
		}
		cfg.DebugUserID = debugID
	}

	return cfg, nil
}

// isHexDigest reports whether s looks like a SHA-1 hex digest
func isHexDigest(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
