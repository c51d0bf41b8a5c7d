package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  shopify_order_id TEXT,
  store TEXT NOT NULL,
  name TEXT NOT NULL,
  source TEXT NOT NULL DEFAULT 'shopify',
  status TEXT NOT NULL DEFAULT 'pending',
  customer_note TEXT,
  tags TEXT,
  total_price TEXT NOT NULL DEFAULT '0',
  currency TEXT NOT NULL DEFAULT 'EUR',
  processed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  external_id TEXT NOT NULL,
  title TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  width_cm REAL NOT NULL,
  height_cm REAL NOT NULL,
  profile_color TEXT NOT NULL DEFAULT '',
  orientation TEXT NOT NULL DEFAULT '',
  installation TEXT NOT NULL DEFAULT '',
  threshold TEXT NOT NULL DEFAULT '',
  mesh_type TEXT NOT NULL DEFAULT '',
  curtain_type TEXT NOT NULL DEFAULT '',
  fabric_color TEXT NOT NULL DEFAULT '',
  closure_type TEXT NOT NULL DEFAULT '',
  mounting_type TEXT NOT NULL DEFAULT '',
  frame_status TEXT NOT NULL DEFAULT 'pending',
  mesh_status TEXT NOT NULL DEFAULT 'pending',
  quality_status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (order_id, external_id)
);`
	boxes := `
CREATE TABLE IF NOT EXISTS boxes (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  length_cm REAL NOT NULL,
  width_cm REAL NOT NULL,
  height_cm REAL NOT NULL,
  weight_kg TEXT NOT NULL DEFAULT '0',
  item_ids TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`

	for _, ddl := range []string{orders, items, boxes} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedOrder(t *testing.T, repo Repository, store enums.StoreKey, name string, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:          uuid.New(),
		Store:       store,
		Name:        name,
		Source:      enums.OrderSourceShopify,
		Status:      enums.OrderStatusPending,
		ProcessedAt: createdAt,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	_, err := repo.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	return order
}

func TestRepositoryOrderLifecycle(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	shopifyID := "5550001"
	order := &models.Order{
		ID:             uuid.New(),
		ShopifyOrderID: &shopifyID,
		Store:          enums.StoreKeyNL,
		Name:           "#NL1001",
		Source:         enums.OrderSourceShopify,
		Status:         enums.OrderStatusPending,
		ProcessedAt:    time.Now().UTC(),
	}
	_, err := repo.CreateOrder(ctx, order)
	require.NoError(t, err)

	itemID := uuid.New()
	require.NoError(t, repo.CreateOrderLineItems(ctx, []models.OrderLineItem{{
		ID:            itemID,
		OrderID:       order.ID,
		ExternalID:    "li-1",
		Title:         "Plissé hordeur 150x200",
		Quantity:      1,
		WidthCm:       150,
		HeightCm:      200,
		FrameStatus:   enums.CutStatusPending,
		MeshStatus:    enums.CutStatusPending,
		QualityStatus: enums.QualityStatusPending,
	}}))

	found, err := repo.FindOrderByShopifyID(ctx, enums.StoreKeyNL, shopifyID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = repo.FindOrderByShopifyID(ctx, enums.StoreKeyDE, shopifyID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.UpdateOrderLineItem(ctx, itemID, map[string]any{
		"frame_status": enums.CutStatusComplete,
	}))
	item, err := repo.FindOrderLineItem(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, enums.CutStatusComplete, item.FrameStatus)

	detail, err := repo.FindOrderDetail(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)

	require.NoError(t, repo.DeleteOrderLineItems(ctx, []uuid.UUID{itemID}))
	items, err := repo.FindOrderLineItemsByOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, repo.DeleteOrder(ctx, order.ID))
	_, err = repo.FindOrder(ctx, order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListFiltersAndPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedOrder(t, repo, enums.StoreKeyNL, "#NL100"+string(rune('1'+i)), base.Add(time.Duration(i)*time.Minute))
	}
	deOrder := seedOrder(t, repo, enums.StoreKeyDE, "#DE2001", base.Add(10*time.Minute))
	require.NoError(t, repo.UpdateOrder(ctx, deOrder.ID, map[string]any{"status": enums.OrderStatusInProgress}))

	store := enums.StoreKeyNL
	list, err := repo.List(ctx, pagination.Params{Limit: 2}, Filters{Store: &store})
	require.NoError(t, err)
	assert.Len(t, list.Orders, 2)
	require.NotEmpty(t, list.NextCursor)

	next, err := repo.List(ctx, pagination.Params{Limit: 2, Cursor: list.NextCursor}, Filters{Store: &store})
	require.NoError(t, err)
	assert.Len(t, next.Orders, 1)
	assert.Empty(t, next.NextCursor)

	status := enums.OrderStatusInProgress
	byStatus, err := repo.List(ctx, pagination.Params{}, Filters{Status: &status})
	require.NoError(t, err)
	require.Len(t, byStatus.Orders, 1)
	assert.Equal(t, deOrder.ID, byStatus.Orders[0].ID)

	byQuery, err := repo.List(ctx, pagination.Params{}, Filters{Query: "DE2001"})
	require.NoError(t, err)
	require.Len(t, byQuery.Orders, 1)
	assert.Equal(t, "#DE2001", byQuery.Orders[0].Name)
}

func TestRepositoryListCursorWalksEveryOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	seeded := make([]uuid.UUID, 0, 5)
	for i := 0; i < 5; i++ {
		order := seedOrder(t, repo, enums.StoreKeyNL, fmt.Sprintf("#NL30%02d", i), base.Add(time.Duration(i)*time.Minute))
		seeded = append(seeded, order.ID)
	}

	// newest first, pages of two: 2 + 2 + 1 with no order skipped or repeated
	seen := make([]uuid.UUID, 0, len(seeded))
	cursor := ""
	for page := 0; page < 3; page++ {
		list, err := repo.List(ctx, pagination.Params{Limit: 2, Cursor: cursor}, Filters{})
		require.NoError(t, err)
		for _, summary := range list.Orders {
			seen = append(seen, summary.ID)
		}
		cursor = list.NextCursor
	}
	assert.Empty(t, cursor)
	require.Len(t, seen, len(seeded))

	unique := make(map[uuid.UUID]struct{}, len(seen))
	for _, id := range seen {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, len(seeded))
	for i, id := range seen {
		assert.Equal(t, seeded[len(seeded)-1-i], id, "page walk out of order at position %d", i)
	}
}

func TestRepositoryBoxes(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, repo, enums.StoreKeyUK, "#UK3001", time.Now().UTC())
	box := &models.Box{
		ID:       uuid.New(),
		OrderID:  order.ID,
		LengthCm: 210,
		WidthCm:  25,
		HeightCm: 15,
	}
	_, err := repo.CreateBox(ctx, box)
	require.NoError(t, err)

	found, err := repo.FindBox(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.OrderID)

	require.NoError(t, repo.DeleteBox(ctx, box.ID))
	_, err = repo.FindBox(ctx, box.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
