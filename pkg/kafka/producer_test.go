package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_Plaintext(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	require.NoError(t, err)

	assert.Len(t, p.brokers, 2)
	assert.Nil(t, p.transport)
	assert.Empty(t, p.writers)
}

func TestNewProducer_SecuredTransport(t *testing.T) {
	for _, mechanism := range []string{MechanismPlain, "", MechanismScramSHA256, MechanismScramSHA512} {
		t.Run("mechanism "+mechanism, func(t *testing.T) {
			p, err := NewProducer(Config{
				Brokers:       []string{"kafka:9093"},
				TLS:           true,
				SASLEnabled:   true,
				SASLMechanism: mechanism,
				SASLUsername:  "qarz",
				SASLPassword:  "secret",
			})
			require.NoError(t, err)
			require.NotNil(t, p.transport)
			assert.NotNil(t, p.transport.TLS)
			assert.NotNil(t, p.transport.SASL)
		})
	}

	_, err := NewProducer(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
	assert.ErrorContains(t, err, "unsupported SASL mechanism")
}

func TestProducer_WriterPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	requests := p.writerFor("qarz.loan-requests")
	assert.Same(t, requests, p.writerFor("qarz.loan-requests"))
	assert.IsType(t, &kafkago.Hash{}, requests.Balancer)
	assert.Equal(t, kafkago.RequireAll, requests.RequiredAcks)

	audit := p.writerFor("qarz.audit")
	assert.NotSame(t, requests, audit)
	assert.Len(t, p.writers, 2)
}

func TestProducer_CloseResetsWriters(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	p.writerFor("qarz.loan-requests")

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestMessage_Record(t *testing.T) {
	rec := Message{
		Key:     []byte("k"),
		Value:   []byte(`{"a":1}`),
		Headers: map[string]string{"event_type": "qarz.loan_request.submitted"},
	}.record()

	assert.Equal(t, []byte("k"), rec.Key)
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, "event_type", rec.Headers[0].Key)
	assert.Equal(t, []byte("qarz.loan_request.submitted"), rec.Headers[0].Value)

	assert.Nil(t, Message{Value: []byte("x")}.record().Headers)
}
