// Package migrations embeds the goose migrations of the development backend,
// one directory per SQL dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Up applies all pending SQLite migrations to db.
func Up(ctx context.Context, db *sql.DB) error {
	return run(ctx, db, "sqlite3", "sqlite")
}

// UpPostgres applies all pending PostgreSQL migrations to a pgx-backed db.
func UpPostgres(ctx context.Context, db *sql.DB) error {
	return run(ctx, db, "pgx", "postgres")
}

func run(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(Migrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, dir)
}
