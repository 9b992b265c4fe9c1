// Package repomanager vends dialect-specific repository implementations,
// runs schema migrations (via goose) and opens the configured database.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/aycode/internal/dbx"
	"github.com/dmitrijs2005/aycode/internal/server/migrations"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/problems"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/users"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Dialect() dbx.Dialect { return dbx.Postgres }

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Problems returns a problems.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Problems(db dbx.DBTX) problems.Repository {
	return problems.NewPostgresRepository(db)
}

// RunMigrations applies the embedded postgres migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, dbx.Postgres)
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

func runMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	if _, err := migrateUp(ctx, db, dialect); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}
