// Package cli provides common process initialization utilities shared by the
// entrypoints under cmd.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// SetupLogger initializes structured logging and installs it as the process
// default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are ignored
// silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it. Exits the
// process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitAdapter builds the storage adapter named by the configuration. Exits
// the process on failure.
func InitAdapter(logger *applog.Logger, cfg *config.Config) storage.Adapter {
	switch cfg.DataBackend {
	case "memory":
		logger.Info("Initialized memory backend", "backend", cfg.DataBackend)
		return storage.NewMemoryStore()
	default:
		adapter, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite storage",
				applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite backend",
			"backend", cfg.DataBackend, "path", cfg.SQLiteDBPath)
		return adapter
	}
}
