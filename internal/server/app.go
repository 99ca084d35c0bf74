// Package server wires the portal together: database and migrations, the
// activation notifier, the services, and the HTTP and gRPC endpoints. It runs
// until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/workshops/internal/logging"
	"github.com/dmitrijs2005/workshops/internal/server/config"
	"github.com/dmitrijs2005/workshops/internal/server/httpapi"
	"github.com/dmitrijs2005/workshops/internal/server/notify"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/workshops/internal/server/services"

	gs "github.com/dmitrijs2005/workshops/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	notifier notify.Notifier
	handler  *httpapi.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	n, err := NewNotifier(c, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	reg := services.NewRegistrationService(db, rm, c, n, logger)
	sessions := services.NewAuthService(services.NewPasswordAuthenticator(db, rm, c.BcryptCost), c, logger)
	profiles := services.NewProfileService(db, rm)
	workshops := services.NewWorkshopService(db, rm)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		notifier: n,
		handler:  httpapi.NewHandler(reg, sessions, profiles, workshops, logger),
	}, nil
}

// NewNotifier publishes activation notices to Kafka when brokers are
// configured and only logs them otherwise.
func NewNotifier(c *config.Config, logger logging.Logger) (notify.Notifier, error) {
	if len(c.KafkaBrokers) == 0 {
		return notify.NewLogNotifier(logger), nil
	}
	n, err := notify.NewKafkaNotifier(c.KafkaBrokers, c.KafkaTopic, logger)
	if err != nil {
		return nil, fmt.Errorf("kafka init error: %w", err)
	}
	return n, nil
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
	s := httpapi.NewHTTPServer(app.config.HTTPAddr, app.logger, app.handler, app.config.AllowedOrigins)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until a signal arrives or one of the servers fails, then
// releases the notifier and the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.notifier.Close(); err != nil {
		app.logger.Error(ctx, "notifier close", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
