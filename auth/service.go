// Package auth is responsible for handling authentication logic: user
// registration, login, token issuance, and resolving the current user.
// The service layer here owns the business rules; the handlers in
// `handlers.go` only translate HTTP to and from these methods.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	// PostgreSQL driver and utilities from the `jackc/pgx` suite.
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	// Library for password hashing using bcrypt.
	"golang.org/x/crypto/bcrypt"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/config"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// AuthService provides authentication-related services.
// Dependencies (the database pool and the auth configuration) are injected
// explicitly via the constructor, the usual manual-DI pattern in Go.
type AuthService struct {
	dbPool     *pgxpool.Pool
	authConfig config.AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(dbPool *pgxpool.Pool, authConfig config.AuthConfig) *AuthService {
	return &AuthService{
		dbPool:     dbPool,
		authConfig: authConfig,
	}
}

// Register creates a new user and returns a freshly issued identity token.
// The avatar URL is derived deterministically from the email, the password is
// hashed with bcrypt (which embeds a per-record random salt in the hash), and
// a duplicate email is reported as "User already exists".
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name: strings.TrimSpace(req.Name),
		// Emails are stored in a consistent case; the citext column makes the
		// uniqueness check case-insensitive regardless.
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Avatar:         GravatarURL(req.Email),
		HashedPassword: string(hashedPassword),
	}

	createdUser, err := s.createUser(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// Relying on the unique constraint instead of a pre-check closes
			// the race between two simultaneous registrations.
			return nil, apperror.NewConflictError("User already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	token, err := IssueToken(s.authConfig, createdUser.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &TokenResponse{Token: token}, nil
}

// Login authenticates a user and returns a freshly issued token.
// An unknown email and a wrong password produce the identical error so the
// response never reveals whether an account exists.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.getUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewBadRequestError("Invalid credentials", nil)
		}
		// Log the original database error for debugging purposes
		log.Printf("database error in Login: %v", err)
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	// `bcrypt.CompareHashAndPassword` performs the constant-time comparison.
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewBadRequestError("Invalid credentials", nil)
	}

	token, err := IssueToken(s.authConfig, user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &TokenResponse{Token: token}, nil
}

// GetCurrentUser resolves the authenticated identity to its user record,
// without the password hash. The identity can stop resolving when the account
// was deleted while a token for it was still in flight.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int) (*User, error) {
	var user User
	query := `SELECT id, name, email, avatar, created_at FROM users WHERE id = $1`
	err := s.dbPool.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Name, &user.Email, &user.Avatar, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get current user", err)
	}
	return &user, nil
}

// --- Database helper functions ---
// These keep the SQL localized to the service that owns the users table.

func (s *AuthService) createUser(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (name, email, password, avatar)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at`
	err := s.dbPool.QueryRow(ctx, query, user.Name, user.Email, user.HashedPassword, user.Avatar).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, name, email, avatar, password, created_at FROM users WHERE email = $1`
	err := s.dbPool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&user.ID, &user.Name, &user.Email, &user.Avatar, &user.HashedPassword, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
