package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsight/fitsight/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  host: 127.0.0.1
  port: 9090
upstream:
  base_url: http://fitness.internal:8000
  query_timeout: 5s
  breaker_cooldown: 15s
telemetry:
  enabled: true
  otlp_endpoint: collector:4317
  environment: staging
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://fitness.internal:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.QueryTimeout)
	assert.Equal(t, 15*time.Second, cfg.Upstream.BreakerCooldown)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4317", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, "staging", cfg.Telemetry.Environment)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
upstream:
  base_url: http://localhost:8000
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Upstream.QueryTimeout)
	assert.Equal(t, 30*time.Second, cfg.Upstream.BreakerCooldown)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EmptyPathUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("FITSIGHT_UPSTREAM_BASE_URL", "http://localhost:8000")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8000", cfg.Upstream.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
upstream:
  base_url: http://from-file:8000
  query_timeout: 5s
`)

	t.Setenv("FITSIGHT_SERVER_HOST", "10.0.0.5")
	t.Setenv("FITSIGHT_SERVER_PORT", "7070")
	t.Setenv("FITSIGHT_UPSTREAM_BASE_URL", "http://from-env:8000")
	t.Setenv("FITSIGHT_UPSTREAM_QUERY_TIMEOUT", "2s")
	t.Setenv("FITSIGHT_UPSTREAM_BREAKER_COOLDOWN", "45s")
	t.Setenv("FITSIGHT_TELEMETRY_ENABLED", "true")
	t.Setenv("FITSIGHT_TELEMETRY_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("FITSIGHT_TELEMETRY_ENVIRONMENT", "production")
	t.Setenv("FITSIGHT_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", cfg.Server.Host)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http://from-env:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Upstream.QueryTimeout)
	assert.Equal(t, 45*time.Second, cfg.Upstream.BreakerCooldown)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "otel:4317", cfg.Telemetry.OTLPEndpoint)
	assert.Equal(t, "production", cfg.Telemetry.Environment)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing base url",
			content: `
server:
  port: 8080
`,
		},
		{
			name: "zero port",
			content: `
server:
  port: 0
upstream:
  base_url: http://localhost:8000
`,
		},
		{
			name: "negative query timeout",
			content: `
upstream:
  base_url: http://localhost:8000
  query_timeout: -1s
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfigFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}
