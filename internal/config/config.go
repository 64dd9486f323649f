// Package config loads runtime configuration from environment variables:
// load, then validate required fields.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the engine process.
type Config struct {
	Model   ModelConfig
	Content ContentConfig
	Store   StoreConfig
	Autosave AutosaveConfig
}

// ModelConfig configures the LLM dungeon-master client.
type ModelConfig struct {
	APIKey string
	Model  string // e.g. "claude-sonnet-4-5"
}

// ContentConfig configures the rules-content provider.
type ContentConfig struct {
	BaseURL string // non-empty selects the live dnd5e API provider (the value itself is not passed to it); empty uses the static table fallback.
}

// StoreConfig configures session/story persistence.
type StoreConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	UseMemory     bool // true forces the in-memory repository even if Redis is configured.
}

// AutosaveConfig configures the wall-clock autosave cron schedule.
type AutosaveConfig struct {
	CronSpec string
	Enabled  bool
}

// Load reads .env (if present, via godotenv — missing file is not an error)
// then environment variables into a Config, validating required fields.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Model: ModelConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  getEnvOrDefault("DM_MODEL", "claude-sonnet-4-5"),
		},
		Content: ContentConfig{
			BaseURL: getEnvOrDefault("DND5E_API_URL", "https://www.dnd5eapi.co/api"),
		},
		Store: StoreConfig{
			RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			UseMemory:     getEnvAsBoolOrDefault("DM_USE_MEMORY_STORE", true),
		},
		Autosave: AutosaveConfig{
			CronSpec: getEnvOrDefault("DM_AUTOSAVE_CRON", "*/5 * * * *"),
			Enabled:  getEnvAsBoolOrDefault("DM_AUTOSAVE_ENABLED", true),
		},
	}

	if cfg.Model.APIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
