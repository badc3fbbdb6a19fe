package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/alumnet/internal/dbx"
	"github.com/dmitrijs2005/alumnet/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/alumnet/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or a
// transaction, so services can run several of them in one dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Jobs(db dbx.DBTX) jobs.Repository
}
