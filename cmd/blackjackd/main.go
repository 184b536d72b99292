package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"blackjack/internal/config"
	"blackjack/internal/logging"
	"blackjack/internal/server"
)

func main() {
	cfg, err := config.ParseDaemonConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix(logging.Prefix)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewStdLogger(os.Stderr, cfg.Debug)
	if err := server.Run(ctx, cfg, logger); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
