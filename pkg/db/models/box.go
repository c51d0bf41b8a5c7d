package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/plissemesh/production-backend/pkg/db/types"
)

// Box is a shipping carton packed with some of an order's line items. The
// system does not enforce that an item appears in exactly one box.
type Box struct {
	ID       uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID  uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	LengthCm float64           `gorm:"column:length_cm;not null"`
	WidthCm  float64           `gorm:"column:width_cm;not null"`
	HeightCm float64           `gorm:"column:height_cm;not null"`
	WeightKg decimal.Decimal   `gorm:"column:weight_kg;type:numeric(8,3);not null;default:0"`
	ItemIDs  dbtypes.UUIDArray `gorm:"column:item_ids;type:uuid[]"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
