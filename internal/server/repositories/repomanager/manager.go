package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lockbox/internal/dbx"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/files"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/folders"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Files(db dbx.DBTX) files.Repository
	Folders(db dbx.DBTX) folders.Repository
}
