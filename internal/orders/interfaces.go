package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/pagination"
)

// Repository defines persistence operations for orders, line items, and boxes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateOrderLineItems(ctx context.Context, items []models.OrderLineItem) error
	FindOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	FindOrderByShopifyID(ctx context.Context, store enums.StoreKey, shopifyOrderID string) (*models.Order, error)
	FindOrderLineItem(ctx context.Context, itemID uuid.UUID) (*models.OrderLineItem, error)
	FindOrderLineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLineItem, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*OrderList, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, updates map[string]any) error
	UpdateOrderLineItem(ctx context.Context, itemID uuid.UUID, updates map[string]any) error
	DeleteOrderLineItems(ctx context.Context, itemIDs []uuid.UUID) error
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error

	CreateBox(ctx context.Context, box *models.Box) (*models.Box, error)
	FindBox(ctx context.Context, boxID uuid.UUID) (*models.Box, error)
	DeleteBox(ctx context.Context, boxID uuid.UUID) error
}
