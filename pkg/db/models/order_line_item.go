package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/plissemesh/production-backend/pkg/enums"
)

// OrderLineItem is a single screen/curtain to manufacture. The categorical
// attributes are stored exactly as the storefront sent them; the cut-sheet
// calculator maps them to shop-floor labels at render time.
type OrderLineItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_order_items_order_external"`
	ExternalID string    `gorm:"column:external_id;not null;uniqueIndex:ux_order_items_order_external"`
	Title      string    `gorm:"column:title;not null"`
	Quantity   int       `gorm:"column:quantity;not null;default:1"`

	WidthCm  float64 `gorm:"column:width_cm;not null"`
	HeightCm float64 `gorm:"column:height_cm;not null"`

	ProfileColor string `gorm:"column:profile_color"`
	Orientation  string `gorm:"column:orientation"`
	Installation string `gorm:"column:installation"`
	Threshold    string `gorm:"column:threshold"`
	MeshType     string `gorm:"column:mesh_type"`
	CurtainType  string `gorm:"column:curtain_type"`
	FabricColor  string `gorm:"column:fabric_color"`
	ClosureType  string `gorm:"column:closure_type"`
	MountingType string `gorm:"column:mounting_type"`

	FrameStatus   enums.CutStatus     `gorm:"column:frame_status;type:text;not null;default:'pending'"`
	MeshStatus    enums.CutStatus     `gorm:"column:mesh_status;type:text;not null;default:'pending'"`
	QualityStatus enums.QualityStatus `gorm:"column:quality_status;type:text;not null;default:'pending'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
