package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/harborlane/specials/internal/auth"
	"github.com/harborlane/specials/internal/config"
	"github.com/harborlane/specials/internal/server"
	"github.com/harborlane/specials/internal/service"
	"github.com/harborlane/specials/internal/storage"
	"github.com/harborlane/specials/internal/storage/postgres"
	"github.com/harborlane/specials/internal/storage/sqlite"
	"github.com/harborlane/specials/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver)

	verifier := auth.NewPasswordVerifier(cfg.Admin.Password, cfg.Admin.PasswordHash)
	sessions := auth.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL)
	logger := slog.Default()

	srv := server.New(
		service.NewSpecialService(store, logger),
		service.NewAuthService(verifier, sessions, logger),
		sessions,
		logger,
	)

	slog.Info("Server starting", "address", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, srv.Handler()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func openStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.New(cfg.Path)
	default:
		return postgres.New(context.Background(), cfg.DatabaseURL)
	}
}
