package broadcast

import (
	"context"
	"encoding/json"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/logger"
)

// ActorRef identifies who produced the event.
type ActorRef struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role,omitempty"`
}

// Envelope is the stable payload structure published to the order-events topic.
type Envelope struct {
	Version    int                       `json:"version"`
	EventID    string                    `json:"eventId"`
	EventType  enums.ProductionEventType `json:"eventType"`
	OccurredAt time.Time                 `json:"occurredAt"`
	Actor      *ActorRef                 `json:"actor,omitempty"`
	Data       json.RawMessage           `json:"data"`
}

// Publisher emits production events after the owning transaction committed.
// Delivery is at most once: a failed publish is logged and dropped, never
// retried, so the write path cannot stall on Pub/Sub.
type Publisher interface {
	Publish(ctx context.Context, eventType enums.ProductionEventType, actor *ActorRef, data any)
}

type topicPublisher interface {
	Publish(ctx context.Context, msg *pubsub.Message) *pubsub.PublishResult
}

type pubsubPublisher struct {
	topic topicPublisher
	logg  *logger.Logger
}

// NewPublisher wraps a Pub/Sub publisher handle.
func NewPublisher(topic topicPublisher, logg *logger.Logger) Publisher {
	if topic == nil {
		return NoopPublisher{}
	}
	return &pubsubPublisher{topic: topic, logg: logg}
}

func (p *pubsubPublisher) Publish(ctx context.Context, eventType enums.ProductionEventType, actor *ActorRef, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		p.logError(ctx, eventType, err)
		return
	}

	envelope := Envelope{
		Version:    1,
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Actor:      actor,
		Data:       raw,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		p.logError(ctx, eventType, err)
		return
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: body,
		Attributes: map[string]string{
			"event_type": eventType.String(),
		},
	})
	go func() {
		if _, err := result.Get(context.Background()); err != nil {
			p.logError(context.Background(), eventType, err)
		}
	}()
}

func (p *pubsubPublisher) logError(ctx context.Context, eventType enums.ProductionEventType, err error) {
	if p.logg == nil {
		return
	}
	ctx = p.logg.WithField(ctx, "event_type", eventType.String())
	p.logg.Error(ctx, "publishing production event failed", err)
}

// NoopPublisher drops every event. Used when Pub/Sub is not configured and in
// service tests.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, enums.ProductionEventType, *ActorRef, any) {}
