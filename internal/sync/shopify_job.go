package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/plissemesh/production-backend/internal/orders"
	"github.com/plissemesh/production-backend/internal/shopify"
	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/logger"
	"github.com/plissemesh/production-backend/pkg/metrics"
)

type storefrontClient interface {
	OrdersUpdatedSince(ctx context.Context, store enums.StoreKey, since time.Time) ([]shopify.OrderPayload, error)
}

type orderIngester interface {
	UpsertExternal(ctx context.Context, input orders.ExternalOrderInput) (*models.Order, bool, error)
}

// ShopifyJobParams configure the polling job.
type ShopifyJobParams struct {
	Client      storefrontClient
	Orders      orderIngester
	Checkpoints CheckpointRepository
	Stores      []enums.StoreKey
	Overlap     time.Duration
	Metrics     *metrics.JobMetrics
	Logger      *logger.Logger
}

// ShopifyJob polls every configured storefront for created and updated
// orders. It is the safety net behind the webhooks: a missed delivery is
// picked up on the next cycle because the watermark is re-read with overlap.
type ShopifyJob struct {
	client      storefrontClient
	orders      orderIngester
	checkpoints CheckpointRepository
	stores      []enums.StoreKey
	overlap     time.Duration
	metrics     *metrics.JobMetrics
	logg        *logger.Logger
}

// NewShopifyJob validates dependencies and builds the job.
func NewShopifyJob(params ShopifyJobParams) (*ShopifyJob, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("storefront client required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order ingester required")
	}
	if params.Checkpoints == nil {
		return nil, fmt.Errorf("checkpoint repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if len(params.Stores) == 0 {
		return nil, fmt.Errorf("at least one store required")
	}
	return &ShopifyJob{
		client:      params.Client,
		orders:      params.Orders,
		checkpoints: params.Checkpoints,
		stores:      params.Stores,
		overlap:     params.Overlap,
		metrics:     params.Metrics,
		logg:        params.Logger,
	}, nil
}

// Name implements Job.
func (j *ShopifyJob) Name() string { return "shopify_order_sync" }

// Run polls every store. A failing store does not block the others; the
// errors are combined and reported together.
func (j *ShopifyJob) Run(ctx context.Context) error {
	var combined error
	for _, store := range j.stores {
		if err := j.syncStore(ctx, store); err != nil {
			combined = multierr.Append(combined, fmt.Errorf("store %s: %w", store, err))
		}
	}
	return combined
}

func (j *ShopifyJob) syncStore(ctx context.Context, store enums.StoreKey) error {
	ctx = j.logg.WithStoreKey(ctx, store.String())

	since, err := j.watermark(ctx, store)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}

	payloads, err := j.client.OrdersUpdatedSince(ctx, store, since)
	if err != nil {
		return fmt.Errorf("fetch orders: %w", err)
	}

	var (
		synced    int
		newest    time.Time
		syncError error
	)
	for _, payload := range payloads {
		input, err := shopify.MapOrder(store, payload)
		if err != nil {
			// One malformed order must not stall the watermark forever,
			// but it is surfaced so the cycle is reported as failed.
			j.logg.Error(ctx, fmt.Sprintf("skipping unmappable order %d", payload.ID), err)
			syncError = multierr.Append(syncError, err)
			continue
		}
		if _, _, err := j.orders.UpsertExternal(ctx, input); err != nil {
			syncError = multierr.Append(syncError, fmt.Errorf("order %s: %w", input.ShopifyOrderID, err))
			continue
		}
		synced++
		if payload.UpdatedAt.After(newest) {
			newest = payload.UpdatedAt
		}
	}

	if j.metrics != nil && synced > 0 {
		j.metrics.AddOrdersSynced(store.String(), synced)
	}
	if !newest.IsZero() {
		if err := j.checkpoints.Save(ctx, store, newest); err != nil {
			syncError = multierr.Append(syncError, fmt.Errorf("save checkpoint: %w", err))
		}
	}
	if synced > 0 {
		j.logg.Info(ctx, fmt.Sprintf("synced %d orders", synced))
	}
	return syncError
}

// watermark returns the poll start for a store: the stored checkpoint minus
// the overlap window. A store with no checkpoint yet syncs from the epoch.
func (j *ShopifyJob) watermark(ctx context.Context, store enums.StoreKey) (time.Time, error) {
	checkpoint, err := j.checkpoints.Find(ctx, store)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	since := checkpoint.LastSyncedAt
	if j.overlap > 0 {
		since = since.Add(-j.overlap)
	}
	return since, nil
}
