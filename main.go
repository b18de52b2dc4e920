package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"checksync/config"
	"checksync/connection"

	"github.com/spf13/pflag"
)

func main() {
	var envFile, addr string
	var verbose bool

	flagSet := pflag.NewFlagSet("checksync", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", "", "env file to load before reading the environment (default: .env)")
	flagSet.StringVar(&addr, "addr", "", "listen address, overrides HTTP_ADDR and PORT")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(envFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if addr != "" {
		cfg.HTTP.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := connection.NewServer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	defer server.Close()

	if err := server.Run(ctx); err != nil {
		logger.Error("server exited", "err", err)
		server.Close()
		os.Exit(1)
	}
}
