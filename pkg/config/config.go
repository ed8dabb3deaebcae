package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds every tunable of the catalog server. It is resolved once in
// main and passed by value; nothing reads the environment after startup.
type Config struct {
	Address         string
	StoreURL        string
	LogLevel        string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	Version         string
}

const Version = "0.3.0"

const (
	defaultAddress         = ":8080"
	defaultStoreURL        = "sqlite://file:datamarket.db"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 30 * time.Second
)

// FromEnv builds a Config from DATAMARKET_* environment variables, falling
// back to defaults suitable for local development.
func FromEnv() (Config, error) {
	cfg := Config{
		Address:         envOr("DATAMARKET_ADDRESS", defaultAddress),
		StoreURL:        envOr("DATAMARKET_STORE_URL", defaultStoreURL),
		LogLevel:        envOr("DATAMARKET_LOG_LEVEL", defaultLogLevel),
		AllowedOrigins:  splitNonEmpty(envOr("DATAMARKET_ALLOWED_ORIGINS", "*")),
		ShutdownTimeout: defaultShutdownTimeout,
		Version:         Version,
	}

	if raw, ok := os.LookupEnv("DATAMARKET_SHUTDOWN_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse DATAMARKET_SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		cfg.ShutdownTimeout = timeout
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitNonEmpty(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
