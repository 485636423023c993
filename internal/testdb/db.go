// Package testdb provides utilities for database-backed tests. Tests
// that need a real PostgreSQL instance call Open, which skips the test
// when no test database is configured.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	// Register the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/lunarhall/taskdeck-api/migrations"
)

// Environment variables checked for the test database URL, in order.
const (
	EnvTestDatabaseURL = "TASKDECK_TEST_DB_URL"
	EnvDatabaseURL     = "DATABASE_URL"
)

var migrateOnce sync.Once

// GetTestDatabaseURL returns the database URL to use for tests, or the
// empty string when none is configured.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv(EnvTestDatabaseURL); dbURL != "" {
		return dbURL
	}
	return os.Getenv(EnvDatabaseURL)
}

// Open connects to the configured test database and ensures migrations
// are applied. The test is skipped when no test database URL is set, so
// unit test runs don't require PostgreSQL.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("skipping: set %s or %s to run database tests", EnvTestDatabaseURL, EnvDatabaseURL)
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Logf("Warning: failed to close test database: %v", closeErr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping test database at %s: %v", maskDatabaseURL(dbURL), err)
	}

	migrateOnce.Do(func() {
		goose.SetBaseFS(migrations.FS)
		defer goose.SetBaseFS(nil)

		if dialectErr := goose.SetDialect("postgres"); dialectErr != nil {
			t.Fatalf("Failed to set goose dialect: %v", dialectErr)
		}
		if upErr := goose.UpContext(ctx, db, "."); upErr != nil {
			t.Fatalf("Failed to apply test migrations: %v", upErr)
		}
	})

	return db
}

// WithTx runs fn within a transaction that is rolled back afterwards,
// so tests never persist changes and can run against a shared database.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	defer func() {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", rollbackErr)
		}
	}()

	fn(t, tx)
}

// maskDatabaseURL hides the password in a database URL for safe
// logging in test failure messages.
func maskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "(unparseable database URL)"
	}
	if parsed.User != nil {
		parsed.User = url.User(parsed.User.Username())
	}
	return parsed.String()
}
