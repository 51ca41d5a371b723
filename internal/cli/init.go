// Package cli provides common process initialization shared by the tally
// commands: env loading, logging, configuration, and the token store.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"tally/internal/api"
	"tally/internal/config"
	"tally/internal/log"
	"tally/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// InitTokenStore opens the durable token store.
// Returns the store or exits the process on failure.
func InitTokenStore(logger *log.Logger, dbPath string) *storage.TokenStore {
	tokens, err := storage.NewTokenStore(dbPath)
	if err != nil {
		logger.Error("Failed to open token store", log.FieldError, err, log.FieldPath, dbPath)
		os.Exit(1)
	}
	return tokens
}

// NewAPIClient builds the API client from configuration.
func NewAPIClient(cfg *config.Config, logger *log.Logger) *api.Client {
	return api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, logger)
}
