package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/examhub/internal/dbx"
	"github.com/dmitrijs2005/examhub/internal/server/migrations"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/content"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/otps"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/users"
)

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

var _ RepositoryManager = (*SQLiteRepositoryManager)(nil)

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

func (m *SQLiteRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(db)
}

func (m *SQLiteRepositoryManager) OTPs(db dbx.DBTX) otps.Repository {
	return otps.NewSQLRepository(db)
}

func (m *SQLiteRepositoryManager) Content(db dbx.DBTX) content.Repository {
	return content.NewSQLRepository(db)
}

// migrateUp is a seam for tests.
var migrateUp = migrations.Up

// RunMigrations applies the embedded goose migrations to db.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db)
}
