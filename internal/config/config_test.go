package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "LOG_LEVEL", "MAX_BODY_BYTES", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"CORS_ALLOWED_ORIGINS", "ENABLE_HSTS", "SEED_DATA", "SHUTDOWN_TIMEOUT",
}

// clearEnv blanks every variable Load reads and runs the test from an empty
// directory so no .env file leaks in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 50.0, cfg.RateLimitRPS)
	assert.Equal(t, 100, cfg.RateLimitBurst)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.EnableHSTS)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("ENABLE_HSTS", "true")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("RATE_LIMIT_RPS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.EnableHSTS)
	assert.False(t, cfg.SeedData)
	assert.Zero(t, cfg.RateLimitRPS)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := map[string]string{
		"PORT":             "http",
		"LOG_LEVEL":        "loud",
		"MAX_BODY_BYTES":   "lots",
		"RATE_LIMIT_BURST": "1.5",
		"SEED_DATA":        "maybe",
		"SHUTDOWN_TIMEOUT": "10",
	}

	for key, value := range testCases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("PORT=4000\nLOG_LEVEL=warn\n"), 0644))
	t.Setenv("PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}
