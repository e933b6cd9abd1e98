// Package cli wires the aarshjul commands and their shared
// initialization: env file loading, logging, configuration and the
// backing store.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"

	"aarshjul/internal/config"
	applog "aarshjul/internal/log"
	"aarshjul/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging from the configured level
// and installs it as the process default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenStore opens the SQLite store at the configured path and runs
// pending migrations.
func OpenStore(cfg *config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening store at %s: %w", cfg.DBPath, err)
	}
	return store, nil
}
