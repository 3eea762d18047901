package memory

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Huanyu_Go/internal/eventlog"
)

// EventLog is an in-process eventlog.Repository. It lives outside Store so
// logging an event never contends with flow transactions.
type EventLog struct {
	mu     sync.Mutex
	events []eventlog.Event
	nextID int64
	now    func() time.Time
}

var _ eventlog.Repository = (*EventLog)(nil)

// NewEventLog creates an empty event log
func NewEventLog() *EventLog {
	return &EventLog{now: time.Now}
}

func (l *EventLog) LogEvent(ctx context.Context, eventType string, accountID *string, payload, metadata map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	var acct *string
	if accountID != nil {
		id := *accountID
		acct = &id
	}
	l.events = append(l.events, eventlog.Event{
		ID:        l.nextID,
		EventType: eventType,
		AccountID: acct,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: l.now(),
	})
	return nil
}

// GetEvents scans newest first
func (l *EventLog) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []eventlog.Event
	for i := len(l.events) - 1; i >= 0; i-- {
		e := l.events[i]
		if filter.AccountID != "" && (e.AccountID == nil || *e.AccountID != filter.AccountID) {
			continue
		}
		if filter.EventType != "" && e.EventType != filter.EventType {
			continue
		}
		if !filter.Since.IsZero() && e.CreatedAt.Before(filter.Since) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (l *EventLog) CleanupOldEvents(ctx context.Context, cutoff time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.events[:0]
	for _, e := range l.events {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	deleted := int64(len(l.events) - len(kept))
	l.events = kept
	return deleted, nil
}
