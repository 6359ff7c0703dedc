// Package config loads recordctl settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Backend names accepted by Validate.
const (
	BackendMemory = "memory"
	BackendNeo4j  = "neo4j"
	BackendRedis  = "redis"
)

// ErrUnknownBackend is returned by Validate for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown backend")

// Config holds all application configuration
type Config struct {
	// App
	Env string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jLabel    string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Load reads configuration from environment variables, first loading a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	db, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env:           getEnv("RECORD_ENV", "development"),
		Neo4jURI:      getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", ""),
		Neo4jLabel:    getEnv("NEO4J_LABEL", "Record"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       db,
		RedisPrefix:   getEnv("REDIS_PREFIX", "record:"),
	}, nil
}

// Validate checks that the settings backend needs are present.
func (c *Config) Validate(backend string) error {
	switch backend {
	case BackendMemory:
		return nil
	case BackendNeo4j:
		if c.Neo4jURI == "" {
			return fmt.Errorf("NEO4J_URI is required")
		}
		if c.Neo4jUser == "" {
			return fmt.Errorf("NEO4J_USER is required")
		}
		if c.Neo4jPassword == "" {
			return fmt.Errorf("NEO4J_PASSWORD is required")
		}
		return nil
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required")
		}
		if c.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must not be negative, got %d", c.RedisDB)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
