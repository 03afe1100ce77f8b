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
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends the same repositories as the SQLite
// manager, bound through dbx.Dollar so their queries use $n placeholders.
type PostgresRepositoryManager struct{}

var _ RepositoryManager = (*PostgresRepositoryManager)(nil)

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(dbx.Dollar(db))
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(dbx.Dollar(db))
}

func (m *PostgresRepositoryManager) OTPs(db dbx.DBTX) otps.Repository {
	return otps.NewSQLRepository(dbx.Dollar(db))
}

func (m *PostgresRepositoryManager) Content(db dbx.DBTX) content.Repository {
	return content.NewSQLRepository(dbx.Dollar(db))
}

var migrateUpPostgres = migrations.UpPostgres

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUpPostgres(ctx, db)
}
