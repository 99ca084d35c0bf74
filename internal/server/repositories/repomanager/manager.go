package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/workshops/internal/dbx"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/workshops"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Workshops(db dbx.DBTX) workshops.Repository
}
