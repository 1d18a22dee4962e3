// Package cli provides common initialization shared by the daycheck
// binaries.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"daycheck/internal/config"
	applog "daycheck/internal/log"
	"daycheck/internal/storage"
)

// SetupLogger initializes structured logging at the given level and
// installs it as the process default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.LevelFromString(level)
	cfg.Handler = nil

	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the rating store at the given path.
// Returns the store or exits the process on failure.
func OpenStore(logger *applog.Logger, dbPath string) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open rating store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}
