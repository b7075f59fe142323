package config

import (
	"os"
	"strconv"

	"statease/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
	Host string
}

// UploadConfig holds ingestion limits. Defaults match the documented service
// contract: 10MB files, 100k rows, 100 preview rows.
type UploadConfig struct {
	MaxBytes    int64
	MaxRows     int
	PreviewRows int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8000"),
			Host: getEnvOrDefault("HOST", "0.0.0.0"),
		},
		Upload: UploadConfig{
			MaxBytes:    int64(getEnvIntOrDefault("UPLOAD_MAX_BYTES", 10*1024*1024)),
			MaxRows:     getEnvIntOrDefault("UPLOAD_MAX_ROWS", 100000),
			PreviewRows: getEnvIntOrDefault("UPLOAD_PREVIEW_ROWS", 100),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("upload size limit must be positive")
	}
	if config.Upload.MaxRows <= 0 {
		return errors.ConfigInvalid("upload row limit must be positive")
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
