package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"factorlink/internal/config"
	"factorlink/internal/listener"
	"factorlink/internal/lookup"
	"factorlink/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	lookups, err := lookup.Load(cfg.LookupDir)
	must(err)

	svc := listener.NewService(db, cfg, lookups)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
