package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/plissemesh/production-backend/pkg/enums"
)

// Order is one storefront order moving through the production pipeline. The
// status column is derived from the line items and only written through the
// status reducer (or the admin override).
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopifyOrderID *string           `gorm:"column:shopify_order_id;uniqueIndex:ux_orders_store_shopify_id"`
	Store          enums.StoreKey    `gorm:"column:store;type:text;not null;uniqueIndex:ux_orders_store_shopify_id"`
	Name           string            `gorm:"column:name;not null"`
	Source         enums.OrderSource `gorm:"column:source;type:text;not null;default:'shopify'"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CustomerNote   *string           `gorm:"column:customer_note"`
	Tags           pq.StringArray    `gorm:"column:tags;type:text[]"`
	TotalPrice     decimal.Decimal   `gorm:"column:total_price;type:numeric(12,2);not null;default:0"`
	Currency       string            `gorm:"column:currency;not null;default:'EUR'"`
	ProcessedAt    time.Time         `gorm:"column:processed_at;not null"`
	Items          []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Boxes          []Box             `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
