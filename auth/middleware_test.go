package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/config"
)

func runMiddleware(t *testing.T, cfg config.AuthConfig, token string) (*httptest.ResponseRecorder, int, bool) {
	t.Helper()

	var gotUserID int
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rec := httptest.NewRecorder()

	TokenMiddleware(&cfg)(next).ServeHTTP(rec, req)
	return rec, gotUserID, gotOK
}

func TestTokenMiddlewareMissingHeader(t *testing.T) {
	rec, _, ok := runMiddleware(t, testAuthConfig(), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ok)
	assert.JSONEq(t, `{"error":"No token, authorization denied"}`, rec.Body.String())
}

func TestTokenMiddlewareInvalidToken(t *testing.T) {
	rec, _, ok := runMiddleware(t, testAuthConfig(), "definitely-not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ok)
	assert.JSONEq(t, `{"error":"Token is not valid"}`, rec.Body.String())
}

func TestTokenMiddlewareExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	expired := cfg
	expired.TokenDuration = -time.Hour

	token, err := IssueToken(expired, 7)
	require.NoError(t, err)

	rec, _, ok := runMiddleware(t, cfg, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, ok)
}

func TestTokenMiddlewareValidToken(t *testing.T) {
	cfg := testAuthConfig()
	token, err := IssueToken(cfg, 7)
	require.NoError(t, err)

	rec, userID, ok := runMiddleware(t, cfg, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
	assert.Equal(t, 7, userID)
}
