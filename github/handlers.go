// Package github, HTTP handler for the public repository-listing proxy route.
package github

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/devconnect-go/auth"
)

// Handlers wraps the Client for the proxy route.
type Handlers struct {
	client *Client
}

// NewHandlers creates new github proxy Handlers.
func NewHandlers(client *Client) *Handlers {
	return &Handlers{client: client}
}

// HandleListRepos godoc
// @Summary List a user's public repositories
// @Description Public proxy to the external repository API; returns the upstream JSON verbatim.
// @Tags profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} object
// @Failure 404 {object} apperror.ErrorResponse "No Github profile found"
// @Failure 502 {object} apperror.ErrorResponse "Upstream unreachable"
// @Router /api/profile/github/{username} [get]
func (h *Handlers) HandleListRepos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := h.client.ListRepos(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		// The upstream body is already JSON; write it through untouched.
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}
