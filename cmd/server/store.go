package main

import (
	"context"
	"log/slog"

	"github.com/mmynk/hotelbilling/internal/config"
	"github.com/mmynk/hotelbilling/internal/storage"
	"github.com/mmynk/hotelbilling/internal/storage/memory"
	"github.com/mmynk/hotelbilling/internal/storage/postgres"
	"github.com/mmynk/hotelbilling/internal/storage/sqlite"
)

// openStore opens the configured backend. If it cannot be opened the server
// keeps running on a memory store: billing works, but nothing survives a
// restart.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) storage.Store {
	var (
		store storage.Store
		err   error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		store, err = sqlite.New(cfg.Path)
	case config.DriverPostgres:
		store, err = postgres.New(ctx, cfg.DSN)
	default:
		logger.Info("Storage initialized", "driver", config.DriverMemory)
		return memory.New()
	}

	if err != nil {
		logger.Error("Failed to initialize storage, falling back to memory",
			"driver", cfg.Driver, "error", err)
		return memory.New()
	}

	logger.Info("Storage initialized", "driver", cfg.Driver)
	return store
}
