package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongo", cfg.Storage)
	assert.Equal(t, time.Minute, cfg.DispatchInterval)
	assert.Equal(t, 8, cfg.DispatchConcurrency)
	assert.Equal(t, "20:00", cfg.StreakCheckpoint)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE", "memory")
	t.Setenv("DISPATCH_INTERVAL", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, 30*time.Second, cfg.DispatchInterval)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE", "sqlite")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_IntervalMustFitWindow(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REMINDER_WINDOW", "5m")

	t.Setenv("DISPATCH_INTERVAL", "11m")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DISPATCH_INTERVAL")

	t.Setenv("DISPATCH_INTERVAL", "10m")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.DispatchInterval)

	t.Setenv("DISPATCH_INTERVAL", "0s")
	_, err = LoadConfig()
	assert.Error(t, err)
}
