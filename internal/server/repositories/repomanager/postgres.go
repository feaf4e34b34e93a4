// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/abhi221112/weekend-denso/internal/dbx"
	"github.com/abhi221112/weekend-denso/internal/server/migrations"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/kanban"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/lotstructure"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/refreshtokens"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/rework"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/rights"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Rights(db dbx.DBTX) rights.Repository {
	return rights.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) LotStructure(db dbx.DBTX) lotstructure.Repository {
	return lotstructure.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Kanban(db dbx.DBTX) kanban.Repository {
	return kanban.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Rework(db dbx.DBTX) rework.Repository {
	return rework.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
