// Package postgres implements repository.Store on PostgreSQL with pgx.
// Every write is a single guarded statement, so outside a transaction each
// call is still atomic on its own. WithTx adds serializable isolation with
// retry on serialization conflicts.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn runs the repository statements against a pool or an open transaction
type conn struct {
	q querier
}

// Store is the pgx-backed repository.Store
type Store struct {
	*conn
	pool        *pgxpool.Pool
	maxAttempts int

	// OnRetry is called before each retry of a conflicting transaction
	OnRetry func()
}

var _ repository.Store = (*Store)(nil)

// NewStore wraps a pool. maxAttempts below one falls back to DefaultMaxAttempts.
func NewStore(pool *pgxpool.Pool, maxAttempts int) *Store {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Store{
		conn:        &conn{q: pool},
		pool:        pool,
		maxAttempts: maxAttempts,
	}
}

// Ping checks connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// WithTx runs fn in a serializable transaction. Serialization failures and
// deadlocks restart fn with exponential backoff; when the attempts run out
// the error is domain.ErrTxConflict.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	retryDelay := InitialRetryDelay
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		err := s.runTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationError(err) {
			return err
		}
		if attempt == s.maxAttempts-1 {
			logger.FromContext(ctx).Warn(LogMsgRetriesExhausted, "attempts", s.maxAttempts, "error", err)
			return fmt.Errorf("%w: %w", domain.ErrTxConflict, err)
		}
		logger.FromContext(ctx).Debug(LogMsgSerializationConflict, "attempt", attempt+1, "delay", retryDelay)
		if s.OnRetry != nil {
			s.OnRetry()
		}
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return err
		}
		if retryDelay < MaxRetryDelay {
			retryDelay *= 2
		}
	}
	return domain.ErrTxConflict
}

func (s *Store) runTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf(ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(&conn{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}
