package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateOrderLineItems(ctx context.Context, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Boxes").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderByShopifyID(ctx context.Context, store enums.StoreKey, shopifyOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("store = ? AND shopify_order_id = ?", store, shopifyOrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderLineItem(ctx context.Context, itemID uuid.UUID) (*models.OrderLineItem, error) {
	var item models.OrderLineItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindOrderLineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLineItem, error) {
	var items []models.OrderLineItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters Filters) (*OrderList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filters.Store != nil {
		query = query.Where("store = ?", *filters.Store)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Source != nil {
		query = query.Where("source = ?", *filters.Source)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	if q := strings.TrimSpace(filters.Query); q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Order
	if err := query.
		Preload("Items").
		Preload("Boxes").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &OrderList{}
	if len(rows) > normalized {
		rows = rows[:normalized]
		// cursor points at the last returned row; the strict (created_at, id)
		// comparison above then starts the next page right after it
		last := rows[normalized-1]
		list.NextCursor = pagination.NextCursor(last.CreatedAt, last.ID)
	}

	list.Orders = make([]Summary, 0, len(rows))
	for _, row := range rows {
		list.Orders = append(list.Orders, Summary{
			ID:         row.ID,
			Name:       row.Name,
			Store:      row.Store,
			Source:     row.Source,
			Status:     row.Status,
			TotalPrice: row.TotalPrice,
			Currency:   row.Currency,
			ItemCount:  len(row.Items),
			BoxCount:   len(row.Boxes),
			CreatedAt:  row.CreatedAt,
		})
	}
	return list, nil
}

func (r *repository) UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

func (r *repository) UpdateOrderLineItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}

func (r *repository) DeleteOrderLineItems(ctx context.Context, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", itemIDs).
		Delete(&models.OrderLineItem{}).Error
}

func (r *repository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", orderID).
		Delete(&models.Order{}).Error
}

func (r *repository) CreateBox(ctx context.Context, box *models.Box) (*models.Box, error) {
	if err := r.db.WithContext(ctx).Create(box).Error; err != nil {
		return nil, err
	}
	return box, nil
}

func (r *repository) FindBox(ctx context.Context, boxID uuid.UUID) (*models.Box, error) {
	var box models.Box
	err := r.db.WithContext(ctx).
		Where("id = ?", boxID).
		First(&box).Error
	if err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *repository) DeleteBox(ctx context.Context, boxID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", boxID).
		Delete(&models.Box{}).Error
}
