// Package server initializes and runs the tag print application server: it
// opens the database, runs migrations, wires the repositories and services,
// and starts the HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/abhi221112/weekend-denso/internal/logging"
	"github.com/abhi221112/weekend-denso/internal/server/config"
	"github.com/abhi221112/weekend-denso/internal/server/fieldlock"
	"github.com/abhi221112/weekend-denso/internal/server/httpapi"
	"github.com/abhi221112/weekend-denso/internal/server/repositories/repomanager"
	"github.com/abhi221112/weekend-denso/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}

	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	authService := services.NewAuthService(db, rm, cfg)
	tagService := services.NewTagService(db, rm, authService)
	coordinator := fieldlock.NewCoordinator(rm.LotStructure(db))
	lockService := services.NewLockService(coordinator, authService)
	registrationService := services.NewRegistrationService(db, rm)
	imageService := services.NewImageService(cfg)

	httpServer := httpapi.NewServer(cfg, logger,
		authService, tagService, lockService, registrationService, imageService)

	return &App{config: cfg, logger: logger, db: db, server: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "app stopped")
}
