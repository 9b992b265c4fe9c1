package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/aycode/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestUp_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", "file:migrations_test?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	ctx := context.Background()

	n, err := Up(ctx, db, dbx.SQLite)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var tables int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'problems')`).Scan(&tables))
	assert.Equal(t, 2, tables)

	n, err = Up(ctx, db, dbx.SQLite)
	require.NoError(t, err)
	assert.Zero(t, n, "second run must be a no-op")
}

func TestMigrations_EveryDialectHasSameVersions(t *testing.T) {
	pg, err := Migrations.ReadDir("postgres")
	require.NoError(t, err)
	lite, err := Migrations.ReadDir("sqlite")
	require.NoError(t, err)

	require.Equal(t, len(pg), len(lite))
	for i := range pg {
		assert.Equal(t, pg[i].Name(), lite[i].Name())
	}
}
