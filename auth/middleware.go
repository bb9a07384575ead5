// Package auth, as part of the authentication module.
// This file, `middleware.go`, defines the auth gate: HTTP middleware that
// extracts the identity token from the x-auth-token request header, verifies
// it, and attaches the resolved user id to the request context. Protected
// route groups apply it with `r.Use(...)`; public routes never see it.
package auth

import (
	"net/http"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/config"
)

// TokenHeader is the fixed request header carrying the signed identity claim.
const TokenHeader = "x-auth-token"

// TokenMiddleware creates the authentication middleware.
// It is a higher-order function: it takes configuration and returns a function
// conforming to the standard `func(next http.Handler) http.Handler` middleware
// shape that chi composes.
//
// There is no refresh and no revocation list: a token remains valid until its
// natural expiry regardless of server-side state changes.
func TokenMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(TokenHeader)
			if tokenString == "" {
				WriteError(w, r, apperror.NewAuthError("No token, authorization denied", nil))
				return
			}

			claims, err := ParseToken(*cfg, tokenString)
			if err != nil {
				// Malformed, expired, and wrong-secret tokens all collapse into
				// the same client-facing message.
				WriteError(w, r, apperror.NewAuthError("Token is not valid", err))
				return
			}

			// Attach the resolved identity and continue down the chain.
			ctx := NewContextWithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
