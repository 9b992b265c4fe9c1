// Package repotest opens throwaway, fully migrated SQLite databases for tests.
package repotest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/aycode/internal/dbx"
	"github.com/dmitrijs2005/aycode/internal/server/migrations"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// OpenSQLite returns an in-memory database private to t with all
// migrations applied. It is closed on test cleanup.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Shared-cache memory databases lock per table; a single connection
	// avoids SQLITE_LOCKED when test requests run concurrently.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := migrations.Up(context.Background(), db, dbx.SQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}
