package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/lunarhall/taskdeck-api/migrations"
)

// runMigrations applies any pending database migrations using the
// embedded migration files. It is called once at startup before the
// HTTP server begins accepting requests.
func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	migrationLogger := logger.With(slog.String("component", "migrations"))

	startTime := time.Now()
	migrationLogger.Info("Applying pending migrations")

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		migrationLogger.Error("Migration failed",
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		migrationLogger.Warn("Failed to retrieve migration version", "error", err)
	} else {
		migrationLogger.Info("Migrations applied",
			"version", version,
			"duration_ms", time.Since(startTime).Milliseconds())
	}

	return nil
}
