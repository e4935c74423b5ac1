package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vicam001/order-extract/constants"
)

// Config holds all application configuration
type Config struct {
	Batch    BatchConfig
	Staging  StagingConfig
	Template TemplateConfig
}

// BatchConfig holds batch-processing configuration
type BatchConfig struct {
	MaxFileSize int64
}

// StagingConfig holds on-disk staging configuration
type StagingConfig struct {
	Dir string
}

// TemplateConfig holds field-mapping template configuration
type TemplateConfig struct {
	Path string // optional TOML override; empty means the built-in template
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Batch: BatchConfig{
			MaxFileSize: getEnvAsInt64("ORDERS_MAX_FILE_SIZE", constants.MaxFileSizeBytes),
		},
		Staging: StagingConfig{
			Dir: getEnv("ORDERS_STAGING_DIR", os.TempDir()),
		},
		Template: TemplateConfig{
			Path: getEnv("ORDERS_TEMPLATE_PATH", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Batch.MaxFileSize <= 0 {
		return fmt.Errorf("ORDERS_MAX_FILE_SIZE must be positive")
	}
	if c.Staging.Dir == "" {
		return fmt.Errorf("ORDERS_STAGING_DIR is required")
	}
	return nil
}
