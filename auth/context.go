// Package auth, as part of the authentication module.
// This file, `context.go`, deals with carrying the authenticated identity
// through the request's `context.Context`. The middleware stores the resolved
// user id here; handlers read it back with the typed helper below.
package auth

import (
	"context"
)

// `contextKey` is a custom type for context keys. Using an unexported custom
// type prevents collisions with context keys defined in other packages.
type contextKey string

const (
	// userIDContextKey is the key under which the authenticated user's id is stored.
	userIDContextKey contextKey = "auth_user_id"
)

// NewContextWithUserID returns a child context carrying the authenticated user id.
func NewContextWithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext extracts the authenticated user id from the context.
// The second return value indicates whether an id was present; handlers on
// protected routes treat a missing id as a middleware wiring problem.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDContextKey).(int)
	return userID, ok
}
