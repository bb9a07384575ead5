package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"auth", NewAuthError("no token", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not yours", nil), http.StatusForbidden},
		{"not found", NewNotFoundError("gone", nil), http.StatusNotFound},
		{"validation", NewValidationError("bad input", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("bad request", nil), http.StatusBadRequest},
		{"conflict surfaces as 400", NewConflictError("already liked", nil), http.StatusBadRequest},
		{"database", NewDatabaseError("boom", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"external service", NewExternalServiceError("upstream down", nil), http.StatusBadGateway},
		{"migration", NewMigrationError("bad schema", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "?", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestErrorIncludesUnderlying(t *testing.T) {
	underlying := errors.New("connection refused")
	appErr := NewDatabaseError("query failed", underlying)

	assert.Equal(t, "query failed: connection refused", appErr.Error())
	assert.ErrorIs(t, appErr, underlying)
}

func TestToResponseHidesUnderlying(t *testing.T) {
	appErr := NewDatabaseError("query failed", errors.New("password=hunter2 rejected"))
	assert.Equal(t, ErrorResponse{Error: "query failed"}, appErr.ToResponse())
}

func TestTypeCheckHelpers(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("gone", nil)))
	assert.True(t, IsAuthError(NewAuthError("no token", nil)))
	assert.True(t, IsForbidden(NewForbiddenError("not yours", nil)))
	assert.True(t, IsValidationError(NewValidationError("bad", nil)))
	assert.True(t, IsConflictError(NewConflictError("dup", nil)))

	assert.False(t, IsNotFound(NewAuthError("no token", nil)))
	assert.False(t, IsNotFound(nil))

	// Wrapped AppErrors are still recognized.
	wrapped := fmt.Errorf("handler: %w", NewNotFoundError("gone", nil))
	assert.True(t, IsNotFound(wrapped))
}

func TestFromError(t *testing.T) {
	appErr := NewBadRequestError("bad", nil)
	got, ok := FromError(appErr)
	assert.True(t, ok)
	assert.Equal(t, appErr, got)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = FromError(nil)
	assert.False(t, ok)
}
