package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/clubhub/internal/buildinfo"
	"github.com/dmitrijs2005/clubhub/internal/logging"
	"github.com/dmitrijs2005/clubhub/internal/mockserver"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := mockserver.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	srv, err := mockserver.New(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := mockserver.NotifyContext(context.Background())
	err = srv.Run(ctx)
	stop()
	if err != nil {
		logger.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}

}
