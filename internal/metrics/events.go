package metrics

import (
	"context"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/event"
	"github.com/osse101/Huanyu_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.PurchaseCompleted,
		event.ListingCreated,
		event.ListingWithdrawn,
		event.ListingForfeited,
		event.SystemRestocked,
		event.CraftCompleted,
		event.FlowFailed,
		event.FlowUncompensated,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics. Undecodable payloads are
// counted as handler errors and otherwise ignored.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := e.record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func (e *EventMetricsCollector) record(evt event.Event) error {
	switch evt.Type {
	case event.PurchaseCompleted:
		p, err := event.DecodePayload[event.PurchasePayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		Purchases.WithLabelValues(string(p.Source)).Inc()
		ItemsBought.WithLabelValues(string(p.Source)).Add(float64(p.Quantity))
		StonesSpent.WithLabelValues(domain.FlowPurchase).Add(float64(p.Total))
		if p.Source == domain.OfferSourcePlayer {
			StonesEarned.Add(float64(p.Total))
		}

	case event.ListingCreated:
		ListingsCreated.Inc()

	case event.ListingWithdrawn:
		ListingsClosed.WithLabelValues(ClosedWithdrawn).Inc()

	case event.ListingForfeited:
		ListingsClosed.WithLabelValues(ClosedForfeited).Inc()

	case event.SystemRestocked:
		SystemRestocks.Inc()

	case event.CraftCompleted:
		p, err := event.DecodePayload[event.CraftPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		Crafts.WithLabelValues(string(p.Kind), string(p.Outcome)).Inc()
		if p.CostPaid > 0 {
			StonesSpent.WithLabelValues(domain.FlowCraft).Add(float64(p.CostPaid))
		}

	case event.FlowFailed:
		p, err := event.DecodePayload[event.FlowFailurePayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		kind := FailureFatal
		if p.Business {
			kind = FailureBusiness
		}
		FlowFailures.WithLabelValues(p.Flow, kind).Inc()

	case event.FlowUncompensated:
		p, err := event.DecodePayload[event.UncompensatedPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		UncompensatedSteps.WithLabelValues(p.Flow, p.Step).Inc()
	}
	return nil
}
