package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/event"
)

// LogPublisher implements port.EventPublisher by logging each event. It is
// used when no broker is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish serialises each event and logs it at info level.
func (p *LogPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		p.logger.Info("domain event",
			zap.String("event_type", evt.EventType()),
			zap.String("aggregate_id", evt.AggregateID().String()),
			zap.ByteString("payload", payload),
		)
	}
	return nil
}
