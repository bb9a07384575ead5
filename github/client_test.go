package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/config"
)

func TestListReposPassesBodyThrough(t *testing.T) {
	const payload = `[{"name":"repo-one"},{"name":"repo-two"}]`

	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := NewClient(config.GithubConfig{BaseURL: srv.URL})
	body, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, payload, string(body))
	assert.Equal(t, "/users/octocat/repos", gotPath)
	assert.Equal(t, []string{"5"}, gotQuery["per_page"])
	assert.Equal(t, []string{"created:asc"}, gotQuery["sort"])
	assert.NotContains(t, gotQuery, "client_id")
}

func TestListReposSendsCredentialsWhenConfigured(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(config.GithubConfig{
		BaseURL:      srv.URL,
		ClientID:     "id-123",
		ClientSecret: "secret-456",
	})
	_, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)

	assert.Equal(t, []string{"id-123"}, gotQuery["client_id"])
	assert.Equal(t, []string{"secret-456"}, gotQuery["client_secret"])
}

func TestListReposUnknownUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(config.GithubConfig{BaseURL: srv.URL})
	_, err := client.ListRepos(context.Background(), "nobody")

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, "No Github profile found", appErr.Message)
}

func TestListReposUpstreamUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // nothing listens anymore

	client := NewClient(config.GithubConfig{BaseURL: srv.URL})
	_, err := client.ListRepos(context.Background(), "octocat")

	require.Error(t, err)
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.ExternalServiceError, appErr.Type)
}
