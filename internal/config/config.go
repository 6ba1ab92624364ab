package config

import (
	"os"
	"strconv"

	"datasense/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	AI       AIConfig
	Server   ServerConfig
	Database DatabaseConfig
}

// AIConfig holds settings for the LLM interpretation service
type AIConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds optional persistence settings. An empty URL
// disables the Postgres dataset repository.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it.
// Validation failures surface as typed CONFIG_INVALID errors at load
// time rather than being cached and re-raised on first use.
func Load() (*Config, error) {
	aiConfig, err := loadAIConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AI configuration")
	}

	return &Config{
		AI: *aiConfig,
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}, nil
}

func loadAIConfig() (*AIConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.ConfigInvalid("OPENAI_API_KEY is required")
	}

	return &AIConfig{
		APIKey:      apiKey,
		Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		BaseURL:     getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 512),
		Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.0),
	}, nil
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
