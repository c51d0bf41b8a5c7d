package sync

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
)

// CheckpointRepository persists the per-store polling watermark.
type CheckpointRepository interface {
	Find(ctx context.Context, store enums.StoreKey) (*models.SyncCheckpoint, error)
	Save(ctx context.Context, store enums.StoreKey, lastSyncedAt time.Time) error
}

type gormCheckpointRepository struct {
	db *gorm.DB
}

// NewCheckpointRepository builds the checkpoint repo on the shared DB.
func NewCheckpointRepository(db *gorm.DB) CheckpointRepository {
	return &gormCheckpointRepository{db: db}
}

func (r *gormCheckpointRepository) Find(ctx context.Context, store enums.StoreKey) (*models.SyncCheckpoint, error) {
	var checkpoint models.SyncCheckpoint
	if err := r.db.WithContext(ctx).First(&checkpoint, "store = ?", store).Error; err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (r *gormCheckpointRepository) Save(ctx context.Context, store enums.StoreKey, lastSyncedAt time.Time) error {
	checkpoint := models.SyncCheckpoint{
		Store:        store,
		LastSyncedAt: lastSyncedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_synced_at"}),
		}).
		Create(&checkpoint).Error
}
