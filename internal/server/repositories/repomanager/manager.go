package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/aycode/internal/dbx"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/problems"
	"github.com/dmitrijs2005/aycode/internal/server/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Problems(db dbx.DBTX) problems.Repository
}
