package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bimod/internal/buildinfo"
	"github.com/dmitrijs2005/bimod/internal/devserver"
	"github.com/dmitrijs2005/bimod/internal/devserver/config"
	"github.com/dmitrijs2005/bimod/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	app := devserver.NewApp(cfg, logger)

	app.Run(ctx)

}
