package messaging

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/event"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
)

// PublisherMetrics counts published and failed domain events by type.
type PublisherMetrics struct {
	published *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewPublisherMetrics registers the counters with reg.
func NewPublisherMetrics(reg prometheus.Registerer) *PublisherMetrics {
	f := promauto.With(reg)
	return &PublisherMetrics{
		published: f.NewCounterVec(prometheus.CounterOpts{
			Name: "qarz_domain_events_total",
			Help: "Domain events handed to the event publisher.",
		}, []string{"event_type"}),
		failed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "qarz_domain_events_failed_total",
			Help: "Domain events the publisher could not deliver.",
		}, []string{"event_type"}),
	}
}

// InstrumentedPublisher decorates a publisher with event counters.
type InstrumentedPublisher struct {
	next    port.EventPublisher
	metrics *PublisherMetrics
}

func NewInstrumentedPublisher(next port.EventPublisher, metrics *PublisherMetrics) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, metrics: metrics}
}

func (p *InstrumentedPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	err := p.next.Publish(ctx, events...)
	counter := p.metrics.published
	if err != nil {
		counter = p.metrics.failed
	}
	for _, evt := range events {
		counter.WithLabelValues(evt.EventType()).Inc()
	}
	return err
}

// Published returns the success counter for eventType.
func (m *PublisherMetrics) Published(eventType string) prometheus.Counter {
	return m.published.WithLabelValues(eventType)
}

// Failed returns the failure counter for eventType.
func (m *PublisherMetrics) Failed(eventType string) prometheus.Counter {
	return m.failed.WithLabelValues(eventType)
}
