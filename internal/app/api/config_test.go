package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

var configEnvKeys = []string{
	"CONFIG_FILE", "PORT", "POSTGRES_DSN", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE",
	"TEMPORAL_DISABLED", "TZ", "CORS_ALLOWED_ORIGINS", "SENTRY_DSN", "ENVIRONMENT",
	"RELEASE", "LOG_LEVEL", "STATUS_REFRESH_INTERVAL_MINUTES", "PUSHGATEWAY_URL",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	assert.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	assert.Equal(t, "UTC", cfg.TimeZone)
	assert.False(t, cfg.TemporalDisabled)
	assert.Zero(t, cfg.StatusRefreshInterval())
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("TZ", "Asia/Tokyo")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com,")
	t.Setenv("STATUS_REFRESH_INTERVAL_MINUTES", "15")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, "Asia/Tokyo", cfg.TimeZone)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 15*time.Minute, cfg.StatusRefreshInterval())
	assert.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)
}

func TestLoadConfigFileIsOverriddenByEnv(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7070"
postgresDsn: postgres://file
timeZone: Europe/Warsaw
temporalDisabled: true
corsAllowedOrigins:
  - http://file.example
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("POSTGRES_DSN", "postgres://env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "postgres://env", cfg.PostgresDSN)
	assert.Equal(t, "Europe/Warsaw", cfg.TimeZone)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, []string{"http://file.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "local", cfg.Environment)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("STATUS_REFRESH_INTERVAL_MINUTES", "soon")
	_, err := LoadConfig()
	require.Error(t, err)

	clearConfigEnv(t)
	t.Setenv("TZ", "Mars/Olympus")
	_, err = LoadConfig()
	require.Error(t, err)

	clearConfigEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadConfig()
	require.Error(t, err)
}
