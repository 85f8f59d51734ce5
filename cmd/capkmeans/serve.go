package main

import (
	"context"
	"flag"
	"io"

	"github.com/katalvlaran/capkmeans/config"
	"github.com/katalvlaran/capkmeans/logging"
	"github.com/katalvlaran/capkmeans/metrics"
	"github.com/katalvlaran/capkmeans/server"
)

func serveCmd(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file (.yaml, .toml or .json)")
	addr := fs.String("addr", "", "listen address (overrides server.addr)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	log, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := server.New(cfg.Server, cfg.Clustering, log, metrics.NewCollector())
	return srv.ListenAndServe(ctx)
}
