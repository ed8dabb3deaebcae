package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, defaultAddress, cfg.Address)
	require.Equal(t, defaultStoreURL, cfg.StoreURL)
	require.Equal(t, defaultLogLevel, cfg.LogLevel)
	require.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	require.Equal(t, defaultShutdownTimeout, cfg.ShutdownTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATAMARKET_ADDRESS", ":9090")
	t.Setenv("DATAMARKET_STORE_URL", "postgres://localhost/catalog")
	t.Setenv("DATAMARKET_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("DATAMARKET_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.Address)
	require.Equal(t, "postgres://localhost/catalog", cfg.StoreURL)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvRejectsBadTimeout(t *testing.T) {
	t.Setenv("DATAMARKET_SHUTDOWN_TIMEOUT", "soon")

	_, err := FromEnv()
	require.Error(t, err)
}
