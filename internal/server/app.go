// Package server initializes and runs the account service. It opens the
// database, applies migrations, wires the services, handles graceful
// shutdown, and starts the HTTP server.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/saschasalles/LabPlatformAPI/internal/logging"
	"github.com/saschasalles/LabPlatformAPI/internal/server/config"
	"github.com/saschasalles/LabPlatformAPI/internal/server/httpapi"
	"github.com/saschasalles/LabPlatformAPI/internal/server/repositories/repomanager"
	"github.com/saschasalles/LabPlatformAPI/internal/server/services"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	accounts *services.AccountService
	pictures *services.PictureService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	as := services.NewAccountService(db, m, c)
	ps := services.NewPictureService(db, m, c)

	return &App{config: c, logger: logger, accounts: as, pictures: ps}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.accounts, app.pictures)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
