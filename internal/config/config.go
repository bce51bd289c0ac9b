package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment names recognized by APP_ENV
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// DefaultMaxEffectDepth bounds nested effect execution when EFFECT_MAX_DEPTH is unset
const DefaultMaxEffectDepth = 32

// Config holds all configuration for the engine and its tools
type Config struct {
	Engine EngineConfig
	Redis  RedisConfig
}

// EngineConfig holds effect engine configuration
type EngineConfig struct {
	Env            string
	MaxEffectDepth int
	ContentDir     string
	Seed           int64
}

// RedisConfig holds Redis-specific configuration for the override store
type RedisConfig struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Engine: EngineConfig{
			Env:            Environment(),
			MaxEffectDepth: getEnvAsIntOrDefault("EFFECT_MAX_DEPTH", DefaultMaxEffectDepth),
			ContentDir:     getEnvOrDefault("CONTENT_DIR", "./content"),
			Seed:           int64(getEnvAsIntOrDefault("BATTLE_SEED", 1)),
		},
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
	}

	if cfg.Engine.MaxEffectDepth < 1 {
		return nil, fmt.Errorf("EFFECT_MAX_DEPTH must be positive, got %d", cfg.Engine.MaxEffectDepth)
	}

	return cfg, nil
}

// Environment returns the normalized APP_ENV value, defaulting to development
func Environment() string {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV")))
	if env == "" {
		return EnvDevelopment
	}
	return env
}

// IsProduction reports whether the process runs with APP_ENV=production.
// The environment is read on every call so tests can flip it with t.Setenv.
func IsProduction() bool {
	return Environment() == EnvProduction
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
