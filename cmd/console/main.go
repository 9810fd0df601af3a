package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"riwijobs/internal/client/api"
	"riwijobs/internal/client/cli"
	"riwijobs/internal/client/config"
	"riwijobs/internal/client/session"
)

func main() {
	cfg := config.Load()

	var sessions *session.Store
	if cfg.SessionPath != "" {
		sessions = session.NewStoreAt(cfg.SessionPath)
	} else {
		store, err := session.NewStore()
		if err != nil {
			log.Fatalf("session store: %v", err)
		}
		sessions = store
	}

	client := api.New(cfg.ServerAddr, cfg.APIKey, sessions, nil)
	app := cli.NewApp(client, sessions, os.Stdin, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v", err)
	}
}
