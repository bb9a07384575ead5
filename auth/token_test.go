package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: 100 * time.Hour,
	}
}

func TestIssueAndParseToken(t *testing.T) {
	cfg := testAuthConfig()

	tokenString, err := IssueToken(cfg, 42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(cfg, tokenString)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "devconnect", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(cfg.TokenDuration), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenExpired(t *testing.T) {
	cfg := testAuthConfig()
	cfg.TokenDuration = -time.Hour

	tokenString, err := IssueToken(cfg, 42)
	require.NoError(t, err)

	_, err = ParseToken(cfg, tokenString)
	assert.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	cfg := testAuthConfig()

	tokenString, err := IssueToken(cfg, 42)
	require.NoError(t, err)

	other := cfg
	other.JWTSecret = "a-different-secret"
	_, err = ParseToken(other, tokenString)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testAuthConfig(), "not.a.token")
	assert.Error(t, err)
}
