package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"marquee/internal/errors"
)

// Data source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `validate:"required"`
	Data     DataConfig     `validate:"required"`
	Database DatabaseConfig
	Log      LogConfig
	Explorer ExplorerConfig `validate:"required"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required,numeric"`
	GinMode string `validate:"oneof=debug release test"`
}

// DataConfig says where the show-week rows come from
type DataConfig struct {
	Source      string `validate:"required,oneof=file postgres"`
	File        string
	Sheet       string `validate:"required"`
	ColumnsFile string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// ExplorerConfig bounds the ranking size accepted from users
type ExplorerConfig struct {
	DefaultLimit int `validate:"min=1"`
	MaxLimit     int `validate:"min=1,gtefield=DefaultLimit"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   *loadServerConfig(),
		Data:     *loadDataConfig(),
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		Log:      LogConfig{Level: strings.ToUpper(getEnvOrDefault("LOG_LEVEL", "INFO"))},
		Explorer: *loadExplorerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		Source:      strings.ToLower(getEnvOrDefault("DATA_SOURCE", SourceFile)),
		File:        getEnvOrDefault("DATA_FILE", "broadway_data.csv"),
		Sheet:       getEnvOrDefault("DATA_SHEET", "Sheet1"),
		ColumnsFile: getEnvOrDefault("COLUMNS_FILE", ""),
	}
}

func loadExplorerConfig() *ExplorerConfig {
	return &ExplorerConfig{
		DefaultLimit: getEnvIntOrDefault("DEFAULT_LIMIT", 10),
		MaxLimit:     getEnvIntOrDefault("MAX_LIMIT", 30),
	}
}

var validate = validator.New()

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return errors.ConfigInvalid("invalid settings: " + strings.Join(fields, ", "))
		}
		return errors.Wrap(err, "validate config")
	}

	switch config.Data.Source {
	case SourceFile:
		if config.Data.File == "" {
			return errors.ConfigInvalid("DATA_FILE is required when DATA_SOURCE=file")
		}
	case SourcePostgres:
		if config.Database.URL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required when DATA_SOURCE=postgres")
		}
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
