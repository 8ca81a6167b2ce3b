package main

import (
	"context"
	"fmt"

	"github.com/mypasslab/mypass/internal/config"
	"github.com/mypasslab/mypass/internal/crypto"
	"github.com/mypasslab/mypass/internal/handler"
	"github.com/mypasslab/mypass/internal/logger"
	"github.com/mypasslab/mypass/internal/server"
	"github.com/mypasslab/mypass/internal/service"
	"github.com/mypasslab/mypass/internal/session"
	"github.com/mypasslab/mypass/internal/store"
	"github.com/mypasslab/mypass/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("mypass-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var db *store.DB
	if store.IsPostgresDSN(cfg.Storage.DB.DSN) {
		db, err = store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	} else {
		db, err = store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error running migrations")
	}

	keys := crypto.NewKeyStore(cfg.App.KeyFile, log)
	if err := keys.LoadOrCreate(); err != nil {
		log.Fatal().Err(err).Msg("error loading encryption key")
	}

	codec := crypto.NewCodec(keys, log)

	guard := session.NewGuard(session.Options{
		InactivityTimeout: cfg.Session.InactivityTimeout,
		UnmaskQuota:       cfg.Session.UnmaskQuota,
		UnmaskWindow:      cfg.Session.UnmaskWindow,
	})

	storages := store.NewStorages(db, log)

	services := service.NewServices(*storages, *cfg, codec, log)

	handlers, err := handler.NewHandlers(services, guard, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	backgroundWorkers := workers.NewWorkers(ctx, *storages, codec, cfg.Workers, log)
	backgroundWorkers.Run()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
