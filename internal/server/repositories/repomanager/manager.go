package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/items"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Items(db dbx.DBTX) items.Repository
}
