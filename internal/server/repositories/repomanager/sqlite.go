package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/aycode/internal/dbx"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/problems"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/users"

	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories, used for local
// development and single-node deployments.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Dialect() dbx.Dialect { return dbx.SQLite }

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Problems(db dbx.DBTX) problems.Repository {
	return problems.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, dbx.SQLite)
}

func NewSQLiteRepositoryManager() RepositoryManager {
	return &SQLiteRepositoryManager{}
}
