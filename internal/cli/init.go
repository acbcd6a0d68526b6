// Package cli provides common initialization utilities shared by
// cmd/weeknab and cmd/weeknab-server.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"weeknab/internal/config"
	"weeknab/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads the configuration and validates it.
// Returns the config or exits the process on failure. An empty path falls
// back to the environment-only config.
func LoadAndValidateConfig(logger *slog.Logger, path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.LoadFromEnv()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		logger.Error("Failed to load configuration", "error", err, "path", path)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitSQLite initializes the report history repository.
// Returns the repository or exits the process on failure.
func InitSQLite(logger *slog.Logger, dbPath string) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize report history database", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return repo
}
