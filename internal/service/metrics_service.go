package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/events"
	"github.com/buckeye-it/ticket-autopilot/internal/observability"
)

// MetricsService folds pipeline events into the in-memory counters.
type MetricsService struct {
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewMetricsService creates the service.
func NewMetricsService(dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *MetricsService {
	return &MetricsService{dispatcher: dispatcher, metrics: metrics, logger: logger}
}

// RegisterHandlers subscribes to pipeline events.
func (m *MetricsService) RegisterHandlers() {
	if m.dispatcher == nil {
		return
	}
	outcomes := map[events.EventType]string{
		events.EventTicketAssigned:    "assigned",
		events.EventTicketSkipped:     "skipped",
		events.EventTicketAutomated:   "automated",
		events.EventAutomationFailed:  "failed",
		events.EventAutomationBlocked: "blocked",
	}
	for eventType, outcome := range outcomes {
		name := outcome
		m.dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			m.metrics.RecordOutcome(event.Pipeline, name)
			return nil
		})
	}
}
