package models

import (
	"time"

	"github.com/plissemesh/production-backend/pkg/enums"
)

// SyncCheckpoint is the per-store polling cursor: the updated_at watermark of
// the newest Shopify order the sync worker has seen.
type SyncCheckpoint struct {
	Store        enums.StoreKey `gorm:"column:store;type:text;primaryKey"`
	LastSyncedAt time.Time      `gorm:"column:last_synced_at;not null"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
