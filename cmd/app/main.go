package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/Huanyu_Go/internal/admin"
	"github.com/osse101/Huanyu_Go/internal/bootstrap"
	"github.com/osse101/Huanyu_Go/internal/catalog"
	"github.com/osse101/Huanyu_Go/internal/config"
	"github.com/osse101/Huanyu_Go/internal/crafting"
	"github.com/osse101/Huanyu_Go/internal/eventlog"
	"github.com/osse101/Huanyu_Go/internal/inventory"
	"github.com/osse101/Huanyu_Go/internal/ledger"
	"github.com/osse101/Huanyu_Go/internal/market"
	"github.com/osse101/Huanyu_Go/internal/server"
	"github.com/osse101/Huanyu_Go/internal/transaction"
	"github.com/osse101/Huanyu_Go/internal/user"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Huanyu exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("environment check failed: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	closeLog, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	store := repos.Store

	if cfg.SeedCatalog {
		if _, err := bootstrap.SyncCatalog(ctx, store, cfg); err != nil {
			repos.Close()
			return err
		}
	}

	journal := eventlog.NewService(repos.EventLog)
	bus, err := bootstrap.InitializeEventSystem(journal)
	if err != nil {
		repos.Close()
		return err
	}
	workers, sched := bootstrap.StartBackgroundJobs(cfg, journal)

	cat := catalog.NewService(store, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	inv := inventory.NewService(store)
	coordinator := transaction.NewService(store, cat, bus, transaction.Config{
		Isolation:     transaction.Isolation(cfg.FlowIsolation),
		SuperAdminID:  cfg.SuperAdminAccountID,
		OfferPageSize: cfg.OfferPageSize,
	})

	srv := server.NewServer(server.Options{
		Port:      cfg.Port,
		APIKey:    cfg.APIKey,
		Isolation: cfg.FlowIsolation,
	}, server.Services{
		Store:       store,
		Users:       user.NewService(store, cfg.StartingBalance),
		Catalog:     cat,
		Inventory:   inv,
		Market:      market.NewService(store, cfg.OfferPageSize),
		Crafting:    crafting.NewService(ledger.NewService(store), inv, cat, nil),
		Admin:       admin.NewService(store, cfg.SuperAdminAccountID),
		EventLog:    journal,
		Coordinator: coordinator,
	})

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:       srv,
		Coordinator:  coordinator,
		Scheduler:    sched,
		Workers:      workers,
		Repositories: repos,
	})
	return err
}
