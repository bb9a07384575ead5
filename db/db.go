// Package db provides database connectivity and migration functionality for the
// devconnect application. It handles establishing the pgx connection pool, enabling
// required PostgreSQL extensions, and running database migrations at startup.
// This package centralizes database concerns; every feature service receives the
// pool from here via constructor injection.
package db

import (
	"context"
	"fmt"
	// `time` is used for setting timeouts and connection pool configurations.
	"time"

	// `golang-migrate` handles database schema migrations from SQL files.
	"github.com/golang-migrate/migrate/v4"
	// The file source driver is imported for its side effect of registering itself.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	// migrate's postgres driver uses database/sql with lib/pq under the hood,
	// so the pq driver must be registered as well.
	_ "github.com/lib/pq"

	// `pgxpool` is part of the `jackc/pgx` suite, providing a robust connection
	// pool for PostgreSQL used by all application queries.
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/config"
)

// NewPool establishes a connection pool to PostgreSQL using the provided configuration.
//
// The pool is configured with max connections, connection lifetime, and idle
// connection management, and the connection is verified with a ping before the
// pool is handed to the rest of the application.
func NewPool(cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable&pool_max_conns=%d",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
		cfg.MaxSize,
	)

	// `pgxpool.ParseConfig` parses the DSN string into a `pgxpool.Config` struct,
	// which allows further fine-grained settings below.
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Use a context with a timeout for the pool creation process so startup does
	// not block indefinitely when the database is unreachable.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	// Verify the connection by pinging before declaring the pool healthy.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close() // Clean up on connection failure
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s with pgxpool", cfg.DBName), err)
	}

	return pool, nil
}

// getDSN constructs a DSN string from PoolConfig, suitable for golang-migrate.
// migrate's postgres driver expects a lib/pq style DSN without pgx pool parameters.
func getDSN(cfg *config.PoolConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)
}

// EnableExtensions enables required PostgreSQL extensions.
// citext backs the case-insensitive unique email column on users.
func EnableExtensions(pool *pgxpool.Pool) error {
	extensions := []string{"citext"}

	for _, ext := range extensions {
		// `CREATE EXTENSION IF NOT EXISTS` is idempotent; it won't error if the
		// extension already exists.
		query := fmt.Sprintf("CREATE EXTENSION IF NOT EXISTS %s;", ext)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := pool.Exec(ctx, query)
		cancel() // Cancel after each Exec; a single deferred cancel in a loop would leak contexts until return
		if err != nil {
			return apperror.NewDatabaseError(fmt.Sprintf("failed to create extension %s", ext), err)
		}
	}

	return nil
}

// RunMigrations applies any pending database migrations from the specified
// migrations directory. It uses golang-migrate to handle migration versioning
// and execution; files follow the {version}_{name}.{up,down}.sql layout.
func RunMigrations(cfg *config.PoolConfig, migrationsPath string) error {
	dsn := getDSN(cfg)

	m, err := migrate.New(
		// `file://` specifies that migrations are read from the local filesystem.
		"file://"+migrationsPath,
		dsn,
	)
	if err != nil {
		return apperror.NewMigrationError("failed to create migrator", err)
	}
	// Close both the source and the database handle migrate opened; the errors
	// are only worth a warning since the migrations themselves already ran.
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			if srcErr != nil {
				fmt.Printf("Warning: error closing migration source: %v\n", srcErr)
			}
			if dbErr != nil {
				fmt.Printf("Warning: error closing migration database instance: %v\n", dbErr)
			}
		}
	}()

	// `m.Up()` applies all available "up" migrations. `migrate.ErrNoChange` is
	// returned when the schema is already current, which is not an actual error.
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return apperror.NewMigrationError("failed to run migrations", err)
	}

	return nil
}
