package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"techfix-hub/internal/config"
	"techfix-hub/internal/data"
	"techfix-hub/internal/handlers"
	"techfix-hub/internal/httpserver"
	"techfix-hub/internal/kv"
	"techfix-hub/internal/logging"
	"techfix-hub/internal/notify"
	"techfix-hub/internal/seed"
	"techfix-hub/internal/session"
)

func main() {
	godotenv.Load()

	var cfg config.Config
	if err := cfg.ParseFlags(); err != nil {
		fmt.Println("Server configuration error:", err)
		os.Exit(1)
	}

	logging.Logg = logging.NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := openStore(cfg)
	if err != nil {
		logging.Logg.Error("Failed to open document store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	notes := notify.NewService(store)
	svc := data.NewService(store, notes)
	sessions := session.NewManager(store, svc)

	if err := seed.Initialize(svc, cfg.SeedFile); err != nil {
		logging.Logg.Error("Failed to seed demo data", "error", err)
		os.Exit(1)
	}

	handler := handlers.NewServer(cfg, svc, notes, sessions)
	server, err := httpserver.New(cfg, handler)
	if err != nil {
		logging.Logg.Error("Server creation error", "error", err)
		os.Exit(1)
	}

	server.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	if err := server.Shutdown(context.Background()); err != nil {
		os.Exit(1)
	}
}

func openStore(cfg config.Config) (*kv.Store, error) {
	if cfg.DBDsn != "" {
		backend, err := kv.OpenPGBackend(cfg.DBDsn)
		if err != nil {
			return nil, err
		}
		return kv.NewStore(backend), nil
	}

	backend, err := kv.OpenFileBackend(cfg.StoreFile)
	if err != nil {
		return nil, err
	}
	return kv.NewStore(backend), nil
}
