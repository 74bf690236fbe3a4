package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("PKT", 5*3600))

	event := NewBaseEvent("loan.request.submitted", aggregateID, "LoanRequest", at)

	if event.EventID() == uuid.Nil {
		t.Error("expected non-nil event ID")
	}
	if event.EventType() != "loan.request.submitted" {
		t.Errorf("unexpected event type %q", event.EventType())
	}
	if event.AggregateID() != aggregateID {
		t.Errorf("expected aggregate ID %v, got %v", aggregateID, event.AggregateID())
	}
	if event.AggregateType() != "LoanRequest" {
		t.Errorf("unexpected aggregate type %q", event.AggregateType())
	}
	if event.OccurredAt().Location() != time.UTC || !event.OccurredAt().Equal(at) {
		t.Errorf("expected %v normalised to UTC, got %v", at, event.OccurredAt())
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestEmbeddedEventSerialisesEnvelope(t *testing.T) {
	type statusChanged struct {
		BaseEvent
		Status string `json:"status"`
	}
	evt := statusChanged{
		BaseEvent: NewBaseEvent("loan.request.status_changed", uuid.New(), "LoanRequest", time.Now()),
		Status:    "approved",
	}

	raw, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "occurred_at", "status"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, raw)
		}
	}
}

func TestHeadersAndPartitionKey(t *testing.T) {
	aggregateID := uuid.New()
	evt := NewBaseEvent("qarz.loan_request.token_assigned", aggregateID, "LoanRequest", time.Now())

	headers := Headers(evt)
	if headers[HeaderEventID] != evt.ID.String() {
		t.Errorf("event id header = %q", headers[HeaderEventID])
	}
	if headers[HeaderEventType] != "qarz.loan_request.token_assigned" {
		t.Errorf("event type header = %q", headers[HeaderEventType])
	}
	if headers[HeaderAggregateType] != "LoanRequest" {
		t.Errorf("aggregate type header = %q", headers[HeaderAggregateType])
	}
	if string(PartitionKey(evt)) != aggregateID.String() {
		t.Errorf("partition key = %q", PartitionKey(evt))
	}
}

func TestEncode(t *testing.T) {
	evt := NewBaseEvent("qarz.loan_request.submitted", uuid.New(), "LoanRequest", time.Now())
	raw, err := Encode(evt)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var decoded BaseEvent
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != evt.ID || decoded.Type != evt.Type {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}
