package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/Huanyu_Go/internal/catalog"
	"github.com/osse101/Huanyu_Go/internal/config"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// SyncCatalog loads, validates and syncs items and recipes from JSON config.
// The files are checked against their JSON schemas and against each other
// before anything is written; the write is one store transaction.
func SyncCatalog(ctx context.Context, store repository.Store, cfg *config.Config) (*catalog.SyncResult, error) {
	slog.Info(LogMsgSyncingCatalog, "items", cfg.ItemsConfigPath, "recipes", cfg.RecipesConfigPath)

	result, err := catalog.Seed(ctx, store, catalog.NewLoader(), cfg.ItemsConfigPath, cfg.RecipesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	if result.ItemsInserted > 0 || result.ItemsUpdated > 0 || result.RecipesUpserted > 0 {
		slog.Info(LogMsgCatalogSynced,
			"items_inserted", result.ItemsInserted,
			"items_updated", result.ItemsUpdated,
			"items_skipped", result.ItemsSkipped,
			"recipes", result.RecipesUpserted)
	} else {
		slog.Info(LogMsgCatalogUnchanged, "items_skipped", result.ItemsSkipped)
	}
	return result, nil
}
