// Package repomanager bundles repository constructors so services can obtain
// repositories bound either to the shared *sql.DB or to a transaction handle.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/saschasalles/LabPlatformAPI/internal/dbx"
	"github.com/saschasalles/LabPlatformAPI/internal/server/repositories/tokens"
	"github.com/saschasalles/LabPlatformAPI/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tokens(db dbx.DBTX) tokens.Repository
}
