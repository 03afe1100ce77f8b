package repomanager

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// IsPostgresDSN reports whether dsn names a PostgreSQL server rather than
// a SQLite database.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open connects to dsn and returns the manager for its dialect: pgx for
// postgres:// URLs, SQLite otherwise. SQLite handles are limited to one
// connection so writers never hit SQLITE_BUSY.
func Open(dsn string) (*sql.DB, RepositoryManager, error) {
	if IsPostgresDSN(dsn) {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return db, NewPostgresRepositoryManager(), nil
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, NewSQLiteRepositoryManager(), nil
}
