package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bimod/internal/buildinfo"
	"github.com/dmitrijs2005/bimod/internal/client/cli"
	"github.com/dmitrijs2005/bimod/internal/client/client"
	"github.com/dmitrijs2005/bimod/internal/client/config"
	"github.com/dmitrijs2005/bimod/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bimod/internal/client/services"
	"github.com/dmitrijs2005/bimod/internal/client/session"
	"github.com/dmitrijs2005/bimod/internal/client/tokenstore"
	"github.com/dmitrijs2005/bimod/internal/logging"
)

const memoryDB = ":memory:"

func main() {

	buildinfo.PrintBanner(os.Stdout, "bimod")
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	// REPL output owns stdout
	logger := logging.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo metadata.Repository
	if cfg.DBPath == memoryDB {
		repo = metadata.NewInMemoryRepository()
	} else {
		var db *sql.DB
		db, err = client.InitDatabase(ctx, cfg.DBPath)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer db.Close()
		repo = metadata.NewSQLiteRepository(db)
	}

	store := tokenstore.New(repo)
	api := client.NewSessionClient(cfg.BaseURL(), cfg.Origin, store, client.WithLogger(logger))
	auth := services.NewAuthService(api)
	sess := session.New(auth, store, api, logger)

	app := cli.NewApp(cli.Deps{
		Config:       cfg,
		Session:      sess,
		Auth:         auth,
		Dashboard:    services.NewDashboardService(api),
		Reports:      services.NewReportService(api),
		COE:          services.NewCOEService(api),
		SQL:          services.NewSQLService(api),
		LastUsername: store.LastUsername,
		Token:        store.Get,
		Log:          logger,
	})

	if err := app.Root(ctx); err != nil {
		log.Printf("%v", err)
	}

}
