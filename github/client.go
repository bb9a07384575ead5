// Package github proxies the repository listing of the external GitHub API.
// The client is constructed with an explicit GithubConfig (credentials and
// base URL) instead of reading ambient globals; tests point BaseURL at a
// local server.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/config"
)

// Client calls the external repository-listing API.
type Client struct {
	cfg        config.GithubConfig
	httpClient *http.Client
}

// NewClient creates a new Client.
// The request timeout bounds how long one proxy call can hold a request open;
// the upstream has no say in our latency budget.
func NewClient(cfg config.GithubConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListRepos fetches the five most recent public repositories of a username and
// returns the upstream JSON body verbatim. Any non-200 upstream answer is
// reported as "No Github profile found"; transport failures surface as an
// external-service error.
func (c *Client) ListRepos(ctx context.Context, username string) ([]byte, error) {
	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if c.cfg.ClientID != "" {
		query.Set("client_id", c.cfg.ClientID)
		query.Set("client_secret", c.cfg.ClientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.cfg.BaseURL, url.PathEscape(username), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.NewInternalError("failed to build github request", err)
	}
	req.Header.Set("User-Agent", "devconnect-go")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewExternalServiceError("failed to reach github", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewNotFoundError("No Github profile found", nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewExternalServiceError("failed to read github response", err)
	}
	return body, nil
}
