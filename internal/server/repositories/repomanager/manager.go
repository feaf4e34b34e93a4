package repomanager

import (
	"context"
	"database/sql"

	"github.com/abhi221112/weekend-denso/internal/dbx"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/kanban"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/lotstructure"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/refreshtokens"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/rework"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/rights"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Rights(db dbx.DBTX) rights.Repository
	LotStructure(db dbx.DBTX) lotstructure.Repository
	Kanban(db dbx.DBTX) kanban.Repository
	Rework(db dbx.DBTX) rework.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
