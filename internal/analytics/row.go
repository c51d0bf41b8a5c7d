package analytics

import (
	"time"

	cbigquery "cloud.google.com/go/bigquery"
)

// ProductionEventRow mirrors the production_events BigQuery schema. Every
// broadcast event lands in the same table; columns that do not apply to a
// given event type stay NULL.
type ProductionEventRow struct {
	EventID       string             `bigquery:"event_id"`
	EventType     string             `bigquery:"event_type"`
	OccurredAt    time.Time          `bigquery:"occurred_at"`
	ActorID       *string            `bigquery:"actor_id"`
	ActorRole     *string            `bigquery:"actor_role"`
	Store         *string            `bigquery:"store"`
	OrderID       *string            `bigquery:"order_id"`
	OrderName     *string            `bigquery:"order_name"`
	OrderSource   *string            `bigquery:"order_source"`
	OrderStatus   *string            `bigquery:"order_status"`
	ItemID        *string            `bigquery:"item_id"`
	FrameStatus   *string            `bigquery:"frame_status"`
	MeshStatus    *string            `bigquery:"mesh_status"`
	QualityStatus *string            `bigquery:"quality_status"`
	BoxID         *string            `bigquery:"box_id"`
	Payload       cbigquery.NullJSON `bigquery:"payload"`
}
