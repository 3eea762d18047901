package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}

// parseAccountID validates an account ID. A malformed ID cannot name an
// existing row, so it reports ErrAccountNotFound.
func parseAccountID(accountID string) (uuid.UUID, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, fmt.Errorf(ErrMsgInvalidAccountID, accountID, domain.ErrAccountNotFound)
	}
	return id, nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// missingReference maps a foreign key violation to the entity that is absent.
// Account references are named *account_id_fkey or *seller_id_fkey.
func missingReference(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		name := pgErr.ConstraintName
		if strings.HasSuffix(name, "account_id_fkey") || strings.HasSuffix(name, "seller_id_fkey") {
			return domain.ErrAccountNotFound
		}
	}
	return domain.ErrItemNotFound
}

func isSerializationError(err error) bool {
	code := pgErrorCode(err)
	return code == PgErrorCodeSerializationFailure || code == PgErrorCodeDeadlockDetected
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
