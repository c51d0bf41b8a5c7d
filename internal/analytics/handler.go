package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/plissemesh/production-backend/internal/orders"
	"github.com/plissemesh/production-backend/pkg/broadcast"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/logger"
)

// ErrUnsupportedEventType marks envelopes the handler has no mapping for.
// The worker acks those instead of retrying them.
var ErrUnsupportedEventType = errors.New("unsupported production event type")

type rowWriter interface {
	Insert(ctx context.Context, row ProductionEventRow) error
}

// Handler flattens production event envelopes into BigQuery rows.
type Handler struct {
	writer rowWriter
	logg   *logger.Logger
}

// NewHandler builds the row handler.
func NewHandler(writer rowWriter, logg *logger.Logger) (*Handler, error) {
	if writer == nil {
		return nil, errors.New("writer is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Handler{writer: writer, logg: logg}, nil
}

// Handle maps the envelope onto the production_events schema and inserts it.
func (h *Handler) Handle(ctx context.Context, envelope broadcast.Envelope) error {
	row := ProductionEventRow{
		EventID:    envelope.EventID,
		EventType:  envelope.EventType.String(),
		OccurredAt: envelope.OccurredAt.UTC(),
		Payload:    encodeJSON(envelope.Data),
	}
	if envelope.Actor != nil {
		row.ActorID = strPtr(envelope.Actor.UserID.String())
		if envelope.Actor.Role != "" {
			row.ActorRole = strPtr(envelope.Actor.Role)
		}
	}

	switch envelope.EventType {
	case enums.EventOrderCreated, enums.EventOrderDeleted, enums.EventStatusOverridden:
		var payload orders.OrderEvent
		if err := decodePayload(envelope, &payload); err != nil {
			return err
		}
		row.OrderID = strPtr(payload.OrderID.String())
		row.Store = strPtr(payload.Store.String())
		row.OrderName = strPtr(payload.Name)
		row.OrderSource = strPtr(payload.Source.String())
		row.OrderStatus = strPtr(payload.Status.String())
	case enums.EventItemStatusChanged:
		var payload orders.ItemStatusEvent
		if err := decodePayload(envelope, &payload); err != nil {
			return err
		}
		row.OrderID = strPtr(payload.OrderID.String())
		row.ItemID = strPtr(payload.ItemID.String())
		row.FrameStatus = strPtr(payload.FrameStatus.String())
		row.MeshStatus = strPtr(payload.MeshStatus.String())
		row.QualityStatus = strPtr(payload.QualityStatus.String())
		row.OrderStatus = strPtr(payload.OrderStatus.String())
	case enums.EventBoxAdded, enums.EventBoxRemoved:
		var payload orders.BoxEvent
		if err := decodePayload(envelope, &payload); err != nil {
			return err
		}
		row.OrderID = strPtr(payload.OrderID.String())
		row.BoxID = strPtr(payload.BoxID.String())
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedEventType, envelope.EventType)
	}

	return h.writer.Insert(ctx, row)
}

func decodePayload(envelope broadcast.Envelope, target any) error {
	if len(envelope.Data) == 0 {
		return fmt.Errorf("empty payload for %s", envelope.EventType)
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", envelope.EventType, err)
	}
	return nil
}

func strPtr(value string) *string {
	return &value
}
