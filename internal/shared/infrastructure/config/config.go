package config

import (
	"os"
	"strconv"

	"github.com/tunelibre/cancionero/internal/shared/infrastructure/database"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database database.PostgresConfig
	Redis    database.RedisConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins string
	MigrationsPath string
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		},
		Database: database.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "cancionero"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: database.RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt parses an integer or returns a default value
func parseInt(value string, defaultValue int) int {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return defaultValue
}
