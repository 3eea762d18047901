package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/Huanyu_Go/internal/event"
	"github.com/osse101/Huanyu_Go/internal/eventlog"
	"github.com/osse101/Huanyu_Go/internal/metrics"
)

// InitializeEventSystem creates the in-process bus the coordinator publishes
// to after each flow and subscribes the metrics collector and, when given,
// the recovery journal to it
func InitializeEventSystem(journal eventlog.Service) (*event.MemoryBus, error) {
	bus := event.NewMemoryBus()

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if journal != nil {
		if err := journal.Subscribe(bus); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedSubscribeJournal, err)
		}
		slog.Info(LogMsgJournalSubscribed)
	}

	slog.Info(LogMsgEventSystemInitialized)
	return bus, nil
}
