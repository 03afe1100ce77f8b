package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/examhub/internal/logging"
	"github.com/dmitrijs2005/examhub/internal/server/config"
	"github.com/dmitrijs2005/examhub/internal/server/migrations"
	"github.com/dmitrijs2005/examhub/internal/server/models"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.TempDir()+"/server.db")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
}

type fixture struct {
	db      *sql.DB
	m       repomanager.RepositoryManager
	users   *UserService
	content *ContentService
	codes   map[string]string
}

func newServices(t *testing.T) *fixture {
	t.Helper()
	s := &fixture{db: openDB(t), m: repomanager.NewSQLiteRepositoryManager(), codes: map[string]string{}}
	s.users = NewUserService(s.db, s.m, testConfig(), logging.Nop(), WithOTPNotifier(func(_ context.Context, st *models.Student, code string) {
		s.codes[st.ID] = code
	}))
	s.content = NewContentService(s.db, s.m)
	return s
}
