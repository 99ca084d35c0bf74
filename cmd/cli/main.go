package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/workshops/internal/cli"
	"github.com/dmitrijs2005/workshops/internal/logging"
	"github.com/dmitrijs2005/workshops/internal/server/config"
	"github.com/dmitrijs2005/workshops/internal/server/notify"
	"github.com/dmitrijs2005/workshops/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/workshops/internal/server/services"
)

func main() {
	cfg := config.LoadConfig()
	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)

	connect := func(ctx context.Context) (*cli.Backend, error) {
		db, err := repomanager.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		rm := repomanager.NewPostgresRepositoryManager()
		return &cli.Backend{
			// activation notices are only logged from the command line
			Registrar: services.NewRegistrationService(db, rm, cfg, notify.NewLogNotifier(logger), logger),
			Migrate:   func(ctx context.Context) error { return rm.RunMigrations(ctx, db) },
			Close:     db.Close,
		}, nil
	}

	root := cli.NewRootCommand(connect, os.Stdin, os.Stdout)
	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
