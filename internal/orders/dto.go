package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plissemesh/production-backend/internal/production/cutsheet"
	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
)

// Filters describe the inputs supported by the orders list.
type Filters struct {
	Store    *enums.StoreKey
	Status   *enums.OrderStatus
	Source   *enums.OrderSource
	DateFrom *time.Time
	DateTo   *time.Time
	Query    string
}

// Summary exposes the aggregated fields returned in the order list.
type Summary struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Store      enums.StoreKey    `json:"store"`
	Source     enums.OrderSource `json:"source"`
	Status     enums.OrderStatus `json:"status"`
	TotalPrice decimal.Decimal   `json:"total_price"`
	Currency   string            `json:"currency"`
	ItemCount  int               `json:"item_count"`
	BoxCount   int               `json:"box_count"`
	CreatedAt  time.Time         `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// ItemDetail is one line item plus its computed cut sheet.
type ItemDetail struct {
	Item  models.OrderLineItem `json:"item"`
	Sheet cutsheet.Sheet       `json:"sheet"`
}

// Detail is the full order view served to the shop floor.
type Detail struct {
	Order models.Order `json:"order"`
	Items []ItemDetail `json:"items"`
}

// LineItemInput is one screen in a manual or external order payload.
type LineItemInput struct {
	ExternalID   string
	Title        string
	Quantity     int
	WidthCm      float64
	HeightCm     float64
	ProfileColor string
	Orientation  string
	Installation string
	Threshold    string
	MeshType     string
	CurtainType  string
	FabricColor  string
	ClosureType  string
	MountingType string
}

// CreateManualInput captures a hand-entered order (phone or email sale).
type CreateManualInput struct {
	Store        enums.StoreKey
	Name         string
	CustomerNote *string
	Tags         []string
	TotalPrice   decimal.Decimal
	Currency     string
	Items        []LineItemInput
	Actor        Actor
}

// ExternalOrderInput is a storefront order as mapped from the Shopify payload.
type ExternalOrderInput struct {
	Store          enums.StoreKey
	ShopifyOrderID string
	Name           string
	CustomerNote   *string
	Tags           []string
	TotalPrice     decimal.Decimal
	Currency       string
	ProcessedAt    time.Time
	Items          []LineItemInput
}

// Actor identifies the authenticated user performing a mutation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// UpdateItemStatusInput carries a department status change for one line item.
type UpdateItemStatusInput struct {
	OrderID uuid.UUID
	ItemID  uuid.UUID
	Frame   *enums.CutStatus
	Mesh    *enums.CutStatus
	Quality *enums.QualityStatus
	Actor   Actor
}

// ItemStatusResult reports the item and order state after a status change.
type ItemStatusResult struct {
	Item        models.OrderLineItem `json:"item"`
	OrderStatus enums.OrderStatus    `json:"order_status"`
}

// OverrideStatusInput is the admin escape hatch for the derived order status.
type OverrideStatusInput struct {
	OrderID uuid.UUID
	Status  enums.OrderStatus
	Actor   Actor
}

// AddBoxInput captures the box dimensions and the packed item references.
type AddBoxInput struct {
	OrderID  uuid.UUID
	LengthCm float64
	WidthCm  float64
	HeightCm float64
	WeightKg decimal.Decimal
	ItemIDs  []uuid.UUID
	Actor    Actor
}
