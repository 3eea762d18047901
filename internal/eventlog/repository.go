package eventlog

import (
	"context"
	"time"
)

// Event is one logged coordinator event
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	AccountID *string                `json:"account_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventFilter narrows a query. Zero fields do not filter; results are newest first.
type EventFilter struct {
	AccountID string
	EventType string
	Since     time.Time
	Limit     int
}

// Repository stores journal entries
type Repository interface {
	LogEvent(ctx context.Context, eventType string, accountID *string, payload, metadata map[string]interface{}) error
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)
	// CleanupOldEvents deletes events created before cutoff and returns how many
	CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error)
}
