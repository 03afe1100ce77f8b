package migrations

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestDialectsShareVersions(t *testing.T) {
	sqliteFiles, err := fs.Glob(Migrations, "sqlite/*.sql")
	require.NoError(t, err)
	pgFiles, err := fs.Glob(Migrations, "postgres/*.sql")
	require.NoError(t, err)

	base := func(paths []string) []string {
		out := make([]string, 0, len(paths))
		for _, p := range paths {
			out = append(out, filepath.Base(p))
		}
		return out
	}
	require.NotEmpty(t, sqliteFiles)
	assert.Equal(t, base(sqliteFiles), base(pgFiles))
}

func TestUp_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dev.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Up(ctx, db))
	require.NoError(t, Up(ctx, db), "idempotent")

	for _, table := range []string{"students", "refresh_tokens", "otps", "institutes", "subjects", "questions", "withdrawals"} {
		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&n))
		assert.Equal(t, 1, n, table)
	}
}
