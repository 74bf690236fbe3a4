package kafka

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/event"
	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/events"
	pkgkafka "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/kafka"
)

// MessageWriter is satisfied by *pkgkafka.Producer.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// EventPublisher implements port.EventPublisher by writing loan request
// events to a single topic, keyed by loan request id so each request's
// events stay ordered within a partition.
type EventPublisher struct {
	writer MessageWriter
	topic  string
	logger *zap.Logger
}

func NewEventPublisher(writer MessageWriter, topic string, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{writer: writer, topic: topic, logger: logger}
}

// Publish serialises and sends domain events as one batch.
func (p *EventPublisher) Publish(ctx context.Context, batch ...event.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(batch))
	for _, evt := range batch {
		payload, err := events.Encode(evt)
		if err != nil {
			return err
		}

		p.logger.Debug("publishing domain event",
			zap.String("event_type", evt.EventType()),
			zap.String("aggregate_id", evt.AggregateID().String()),
			zap.String("topic", p.topic),
			zap.Int("payload_size", len(payload)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:     events.PartitionKey(evt),
			Value:   payload,
			Headers: events.Headers(evt),
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.writer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish events to topic %s: %w", p.topic, err)
	}
	return nil
}
