// Package eventlog journals flows that stopped half-applied, so an operator
// can reconcile the balance or goods the failed step left behind. Completed
// flows are not recorded.
package eventlog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/Huanyu_Go/internal/event"
	"github.com/osse101/Huanyu_Go/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the journal for the LoggedTypes
	Subscribe(bus event.Bus) error
	// Events returns logged events, newest first
	Events(ctx context.Context, filter EventFilter) ([]Event, error)
	// CleanupOldEvents removes events older than the retention period
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

// LoggedTypes are the event types written to the journal
var LoggedTypes = []event.Type{
	event.FlowUncompensated,
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) error {
	for _, eventType := range LoggedTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
	return nil
}

// handleEvent flattens the typed payload to a map and stores it
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		return fmt.Errorf(ErrMsgEncodePayloadFailed, evt.Type, err)
	}
	metadata, _ := evt.Metadata.(map[string]interface{})

	accountID := accountOf(payload)
	if err := s.repo.LogEvent(ctx, string(evt.Type), accountID, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return fmt.Errorf(ErrMsgLogEventFailed, evt.Type, err)
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "account_id", accountID)
	return nil
}

func (s *service) Events(ctx context.Context, filter EventFilter) ([]Event, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	if filter.Limit > MaxQueryLimit {
		filter.Limit = MaxQueryLimit
	}
	events, err := s.repo.GetEvents(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return events, nil
}

func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	n, err := s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCleanupFailed, err)
	}
	return n, nil
}

// accountOf picks the account the event is about
func accountOf(payload map[string]interface{}) *string {
	for _, key := range accountKeys {
		if id, ok := payload[key].(string); ok && id != "" {
			return &id
		}
	}
	return nil
}
