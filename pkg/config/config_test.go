package config_test

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comedor/pkg/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_NAME", "LOG_LEVEL", "COMEDOR_API_URL", "HTTP_TIMEOUT_SECONDS",
		"COMEDOR_SESSION_FILE", "COMEDOR_EPHEMERAL", "JWT_SECRET", "JWT_EXPIRATION_MINUTES",
		"JWT_ISSUER", "HTTP_HOST", "HTTP_PORT", "MOCK_SEED_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.NotEmpty(t, cfg.Session.File)
	assert.False(t, cfg.Session.Ephemeral)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "comedor", cfg.JWT.Issuer)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMEDOR_API_URL", "http://backend:9000/api/")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "15")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("COMEDOR_SESSION_FILE", "/tmp/s.json")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000/api", cfg.API.BaseURL, "sin barra final")
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "/tmp/s.json", cfg.Session.File)
}

func TestLoad_FlagsTienenPrioridad(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMEDOR_API_URL", "http://env/api")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--api-url", "http://flag/api", "--ephemeral", "--log-level", "debug"}))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "http://flag/api", cfg.API.BaseURL)
	assert.True(t, cfg.Session.Ephemeral)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_FlagSinCambiar_NoPisaEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMEDOR_API_URL", "http://env/api")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := config.Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "http://env/api", cfg.API.BaseURL)
}

func TestLoad_TimeoutNegativo(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT_SECONDS", "-1")

	_, err := config.Load(nil)
	assert.Error(t, err)
}
