package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv removes a variable for the duration of the test. t.Setenv is
// called first so the original value is restored on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "devconnect")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "devconnect")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 10, cfg.DB.MaxSize)
	assert.Equal(t, 100*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, "https://api.github.com", cfg.Github.BaseURL)
	assert.Empty(t, cfg.Github.ClientID)
	assert.Equal(t, "5000", cfg.Server.Port)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("JWT_TOKEN_DURATION", "30m")
	t.Setenv("GITHUB_API_BASE_URL", "http://localhost:9999")
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5433, cfg.DB.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenDuration)
	assert.Equal(t, "http://localhost:9999", cfg.Github.BaseURL)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigCollectsAllMissingVariables(t *testing.T) {
	// Only one of the four required variables is set; the aggregated error
	// must name the other three.
	t.Setenv("DB_USER", "devconnect")
	for _, key := range []string{"DB_PASSWORD", "DB_NAME", "JWT_SECRET"} {
		unsetEnv(t, key)
	}

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigPoolSizeClamping(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("DB_POOL_SIZE", "2")
	_, err := LoadConfig()
	assert.Error(t, err, "out-of-range pool size is reported, not silently clamped")

	t.Setenv("DB_POOL_SIZE", "50")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.DB.MaxSize)
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_TOKEN_DURATION", "not-a-duration")

	_, err := LoadConfig()
	assert.Error(t, err)
}
