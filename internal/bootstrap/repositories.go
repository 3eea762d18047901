package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Huanyu_Go/internal/config"
	"github.com/osse101/Huanyu_Go/internal/database"
	"github.com/osse101/Huanyu_Go/internal/database/memory"
	"github.com/osse101/Huanyu_Go/internal/database/postgres"
	"github.com/osse101/Huanyu_Go/internal/database/schema"
	"github.com/osse101/Huanyu_Go/internal/eventlog"
	"github.com/osse101/Huanyu_Go/internal/metrics"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// Repositories holds the store every component is built on and the recovery
// log. Both drivers implement the full repository.Store, so callers never see
// which one runs.
type Repositories struct {
	Store    repository.Store
	EventLog eventlog.Repository
	pool     *pgxpool.Pool
}

// InitializeRepositories opens the configured store. The postgres driver
// connects, migrates when cfg.AutoMigrate is set and reports serialization
// retries to metrics.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		slog.Info(LogMsgStoreReady, "driver", cfg.StoreDriver)
		return &Repositories{Store: memory.NewStore(), EventLog: memory.NewEventLog()}, nil

	case config.StoreDriverPostgres:
		pool, err := database.NewPool(ctx, database.PoolConfig{
			ConnString:  cfg.GetDBConnString(),
			MaxConns:    cfg.DBMaxConns,
			MaxIdleTime: cfg.DBMaxConnIdleTime,
			MaxLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenPool, err)
		}

		if cfg.AutoMigrate {
			if err := schema.Up(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
			}
			slog.Info(LogMsgMigrationsApplied)
		}

		store := postgres.NewStore(pool, cfg.TxMaxAttempts)
		store.OnRetry = metrics.RecordTxRetry
		slog.Info(LogMsgStoreReady, "driver", cfg.StoreDriver, "tx_max_attempts", cfg.TxMaxAttempts)
		return &Repositories{
			Store:    store,
			EventLog: postgres.NewEventLogRepository(pool),
			pool:     pool,
		}, nil
	}
	return nil, fmt.Errorf(ErrMsgUnknownDriver, cfg.StoreDriver)
}

// Close releases the connection pool, if any
func (r *Repositories) Close() {
	if r.pool != nil {
		slog.Info(LogMsgClosingStore)
		r.pool.Close()
	}
}
