// Package auth, token service.
// This file owns the signed identity claim: issuing a time-limited token that
// embeds the user id, and verifying a presented token back into that id.
// Both operations take the AuthConfig explicitly rather than reading any
// ambient state, so the signing secret lives in exactly one place.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/devconnect-go/config"
)

// Claims defines the payload of the identity token.
// Embedding `jwt.RegisteredClaims` includes standard claims like `exp`
// (expiration time) and `iat` (issued at).
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// IssueToken produces a signed claim containing the user identifier, valid for
// cfg.TokenDuration. There is no server-side session: the token itself is the
// proof of identity until it expires.
func IssueToken(cfg config.AuthConfig, userID int) (string, error) {
	expirationTime := time.Now().Add(cfg.TokenDuration)
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "devconnect",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	// HS256 with the configured secret. Signing only fails when the secret is
	// unusable, which surfaces as a 500 at the handler boundary.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ParseToken checks signature and expiry of a presented token and returns its
// claims. Any failure (malformed, expired, wrong secret, wrong algorithm) is
// returned as a plain error; callers translate it into an authentication error.
func ParseToken(cfg config.AuthConfig, tokenString string) (*Claims, error) {
	claims := &Claims{}
	// The key function provides the secret for verification and rejects tokens
	// signed with anything other than HMAC, closing the alg-switch loophole.
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.UserID == 0 {
		return nil, errors.New("user_id claim is missing or invalid")
	}

	return claims, nil
}
