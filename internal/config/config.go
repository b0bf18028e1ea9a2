package config

import (
	"fmt"
	"os"
)

// Config holds everything the server reads from the environment.
type Config struct {
	DatabaseURL    string
	ServerPort     string
	AllowedOrigins string

	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from the environment. DATABASE_URL is the only
// required variable.
func Load() (*Config, error) {
	config := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogOutput:      getEnv("LOG_OUTPUT", "stdout"),
	}

	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("config validation failed: DATABASE_URL is required")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
