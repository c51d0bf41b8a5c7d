package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/plissemesh/production-backend/pkg/broadcast"
	"github.com/plissemesh/production-backend/pkg/logger"
)

const consumerName = "analytics"

// EnvelopeHandler processes decoded production event envelopes.
type EnvelopeHandler interface {
	Handle(ctx context.Context, envelope broadcast.Envelope) error
}

type idempotencyChecker interface {
	CheckAndMarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error)
	Delete(ctx context.Context, consumer string, eventID uuid.UUID) error
}

// Worker consumes production events from Pub/Sub and feeds them to the
// handler exactly once per event ID.
type Worker struct {
	subscription *gcppubsub.Subscriber
	handler      EnvelopeHandler
	manager      idempotencyChecker
	logg         *logger.Logger
}

// NewWorker builds the analytics consumer.
func NewWorker(subscription *gcppubsub.Subscriber, handler EnvelopeHandler, manager idempotencyChecker, logg *logger.Logger) (*Worker, error) {
	if subscription == nil {
		return nil, errors.New("analytics subscription is required")
	}
	if handler == nil {
		return nil, errors.New("analytics handler is required")
	}
	if manager == nil {
		return nil, errors.New("idempotency manager is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}

	return &Worker{
		subscription: subscription,
		handler:      handler,
		manager:      manager,
		logg:         logg,
	}, nil
}

type processResult struct {
	nack bool
}

// Run consumes messages until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return w.subscription.Receive(ctx, func(innerCtx context.Context, msg *gcppubsub.Message) {
		if w.process(innerCtx, msg).nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

func (w *Worker) process(ctx context.Context, msg *gcppubsub.Message) processResult {
	fields := map[string]any{"message_id": msg.ID}
	logCtx := w.logg.WithFields(ctx, fields)

	envelope, err := w.buildEnvelope(msg)
	if err != nil {
		fields["error"] = err.Error()
		w.logg.Warn(w.logg.WithFields(ctx, fields), "invalid production event envelope")
		return processResult{}
	}
	fields["event_id"] = envelope.EventID
	fields["event_type"] = envelope.EventType.String()
	fields["occurred_at"] = envelope.OccurredAt.Format(time.RFC3339Nano)
	logCtx = w.logg.WithFields(ctx, fields)

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		w.logg.Warn(logCtx, "invalid event id")
		return processResult{}
	}

	already, err := w.manager.CheckAndMarkProcessed(logCtx, consumerName, eventID)
	if err != nil {
		w.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		w.logg.Info(logCtx, "event already processed")
		return processResult{}
	}

	if err := w.handler.Handle(logCtx, *envelope); err != nil {
		if errors.Is(err, ErrUnsupportedEventType) {
			w.logg.Warn(logCtx, "dropping unsupported event")
			return processResult{}
		}
		w.logg.Error(logCtx, "handler error", err)
		_ = w.manager.Delete(logCtx, consumerName, eventID)
		return processResult{nack: true}
	}

	w.logg.Info(logCtx, "production event handled")
	return processResult{}
}

func (w *Worker) buildEnvelope(msg *gcppubsub.Message) (*broadcast.Envelope, error) {
	var envelope broadcast.Envelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if envelope.EventID == "" {
		return nil, errors.New("event_id missing")
	}
	if !envelope.EventType.IsValid() {
		return nil, fmt.Errorf("unknown event type %q", envelope.EventType)
	}
	if envelope.OccurredAt.IsZero() {
		return nil, errors.New("occurred_at missing")
	}
	return &envelope, nil
}
