package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/Huanyu_Go/internal/eventlog"
)

type eventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a PostgreSQL event log. It writes outside any
// flow transaction: events are published after commit.
func NewEventLogRepository(db *pgxpool.Pool) eventlog.Repository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) LogEvent(ctx context.Context, eventType string, accountID *string, payload, metadata map[string]interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var metadataJSON []byte
	if metadata != nil {
		if metadataJSON, err = json.Marshal(metadata); err != nil {
			return err
		}
	}

	var acct *uuid.UUID
	if accountID != nil {
		if id, err := uuid.Parse(*accountID); err == nil {
			acct = &id
		}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO event_log (event_type, account_id, payload, metadata)
		VALUES ($1, $2, $3, $4)
	`, eventType, acct, payloadJSON, metadataJSON)
	if err != nil {
		return fmt.Errorf(ErrMsgFailedToWriteEvent, err)
	}
	return nil
}

func (r *eventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, event_type, account_id::text, payload, metadata, created_at
		FROM event_log
		WHERE TRUE`)

	args := []interface{}{}
	arg := func(v interface{}) int {
		args = append(args, v)
		return len(args)
	}

	if filter.AccountID != "" {
		id, err := uuid.Parse(filter.AccountID)
		if err != nil {
			return nil, nil
		}
		fmt.Fprintf(&query, " AND account_id = $%d", arg(id))
	}
	if filter.EventType != "" {
		fmt.Fprintf(&query, " AND event_type = $%d", arg(filter.EventType))
	}
	if !filter.Since.IsZero() {
		fmt.Fprintf(&query, " AND created_at >= $%d", arg(filter.Since))
	}

	query.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		fmt.Fprintf(&query, " LIMIT $%d", arg(filter.Limit))
	}

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToQueryEvents, err)
	}
	return pgx.CollectRows(rows, scanEvent)
}

func scanEvent(row pgx.CollectableRow) (eventlog.Event, error) {
	var (
		e                 eventlog.Event
		payload, metadata []byte
	)
	if err := row.Scan(&e.ID, &e.EventType, &e.AccountID, &payload, &metadata, &e.CreatedAt); err != nil {
		return e, fmt.Errorf(ErrMsgFailedToQueryEvents, err)
	}
	if err := json.Unmarshal(payload, &e.Payload); err != nil {
		return e, fmt.Errorf(ErrMsgFailedToQueryEvents, err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return e, fmt.Errorf(ErrMsgFailedToQueryEvents, err)
		}
	}
	return e, nil
}

func (r *eventLogRepository) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM event_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFailedToWriteEvent, err)
	}
	return tag.RowsAffected(), nil
}
