package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

const batchTimeout = 10 * time.Millisecond

// Message is a record to publish. Headers become kafka record headers.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer keeps one writer per topic, created on first use and shared by
// concurrent publishers.
type Producer struct {
	brokers   []string
	transport *kafkago.Transport // nil selects kafka-go's default transport

	mu      sync.Mutex
	writers map[string]*kafkago.Writer
}

func NewProducer(cfg Config) (*Producer, error) {
	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &Producer{
		brokers:   cfg.Brokers,
		transport: transport,
		writers:   make(map[string]*kafkago.Writer),
	}, nil
}

func newTransport(cfg Config) (*kafkago.Transport, error) {
	if !cfg.TLS && !cfg.SASLEnabled {
		return nil, nil
	}
	t := &kafkago.Transport{}
	if cfg.TLS {
		t.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if cfg.SASLEnabled {
		m, err := saslMechanism(cfg)
		if err != nil {
			return nil, err
		}
		t.SASL = m
	}
	return t, nil
}

// saslMechanism defaults to PLAIN when no mechanism is named.
func saslMechanism(cfg Config) (sasl.Mechanism, error) {
	switch cfg.SASLMechanism {
	case MechanismPlain, "":
		return plain.Mechanism{Username: cfg.SASLUsername, Password: cfg.SASLPassword}, nil
	case MechanismScramSHA256:
		return scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
	case MechanismScramSHA512:
		return scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
	}
	return nil, fmt.Errorf("kafka: unsupported SASL mechanism %q", cfg.SASLMechanism)
}

// Publish writes messages to topic in one batch.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	records := make([]kafkago.Message, len(messages))
	for i, m := range messages {
		records[i] = m.record()
	}
	if err := p.writerFor(topic).WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

func (m Message) record() kafkago.Message {
	r := kafkago.Message{Key: m.Key, Value: m.Value}
	if len(m.Headers) > 0 {
		r.Headers = make([]kafkago.Header, 0, len(m.Headers))
		for k, v := range m.Headers {
			r.Headers = append(r.Headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
	}
	return r
}

// Close flushes and closes every writer. The producer can be reused after.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close writer for %s: %w", topic, err))
		}
	}
	clear(p.writers)
	return errors.Join(errs...)
}

func (p *Producer) writerFor(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.writers[topic]
	if !ok {
		w = &kafkago.Writer{
			Addr:                   kafkago.TCP(p.brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			BatchTimeout:           batchTimeout,
			RequiredAcks:           kafkago.RequireAll,
			AllowAutoTopicCreation: true,
		}
		if p.transport != nil {
			w.Transport = p.transport
		}
		p.writers[topic] = w
	}
	return w
}
