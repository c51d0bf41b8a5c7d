package broadcast

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/plissemesh/production-backend/pkg/enums"
)

func TestNewPublisherWithoutTopicIsNoop(t *testing.T) {
	pub := NewPublisher(nil, nil)
	if _, ok := pub.(NoopPublisher); !ok {
		t.Fatalf("expected NoopPublisher, got %T", pub)
	}
	// Must not panic.
	pub.Publish(context.Background(), enums.EventOrderCreated, nil, map[string]string{"k": "v"})
}

func TestEnvelopeJSONShape(t *testing.T) {
	actor := &ActorRef{UserID: uuid.New(), Role: "admin"}
	data, _ := json.Marshal(map[string]string{"order_id": "abc"})
	envelope := Envelope{
		Version:    1,
		EventID:    uuid.NewString(),
		EventType:  enums.EventItemStatusChanged,
		OccurredAt: time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
		Actor:      actor,
		Data:       data,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if decoded["eventType"] != enums.EventItemStatusChanged.String() {
		t.Fatalf("unexpected event type %v", decoded["eventType"])
	}
	if decoded["version"] != float64(1) {
		t.Fatalf("unexpected version %v", decoded["version"])
	}
	if _, ok := decoded["actor"]; !ok {
		t.Fatal("actor missing from envelope")
	}
	inner, ok := decoded["data"].(map[string]any)
	if !ok || inner["order_id"] != "abc" {
		t.Fatalf("data not embedded as raw JSON: %v", decoded["data"])
	}
}
