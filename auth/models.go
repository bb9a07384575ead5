// Package auth, as part of the authentication module.
// This file, `models.go`, defines the `User` entity as stored in the database
// and used within the application's business logic.
package auth

import "time"

// User represents a registered account.
// The `json:"-"` tag on HashedPassword means the field is ignored by the
// `encoding/json` package, so it can never leak into an API response.
type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Avatar         string    `json:"avatar"`
	HashedPassword string    `json:"-"` // Do not expose hashed password
	CreatedAt      time.Time `json:"created_at"`
}
