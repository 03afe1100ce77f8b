package client

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/examhub/internal/client/migrations"

	_ "modernc.org/sqlite"
)

// RunMigrations brings the local database schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrations.Up(ctx, db)
}

// InitDatabase opens the SQLite file at dsn and migrates it. The returned
// handle backs the encrypted credential store. It is limited to one
// connection: a write transaction would otherwise fail with SQLITE_BUSY
// while another connection reads.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
