package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/plissemesh/production-backend/internal/production"
	"github.com/plissemesh/production-backend/internal/production/cutsheet"
	"github.com/plissemesh/production-backend/pkg/broadcast"
	"github.com/plissemesh/production-backend/pkg/db"
	"github.com/plissemesh/production-backend/pkg/db/models"
	dbtypes "github.com/plissemesh/production-backend/pkg/db/types"
	"github.com/plissemesh/production-backend/pkg/enums"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
	"github.com/plissemesh/production-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order-level operations beyond repository reads.
type Service interface {
	CreateManual(ctx context.Context, input CreateManualInput) (*models.Order, error)
	UpsertExternal(ctx context.Context, input ExternalOrderInput) (*models.Order, bool, error)
	DeleteExternal(ctx context.Context, store enums.StoreKey, shopifyOrderID string) error
	UpdateItemStatus(ctx context.Context, input UpdateItemStatusInput) (*ItemStatusResult, error)
	OverrideStatus(ctx context.Context, input OverrideStatusInput) error
	Delete(ctx context.Context, orderID uuid.UUID, actor Actor) error
	AddBox(ctx context.Context, input AddBoxInput) (*models.Box, error)
	RemoveBox(ctx context.Context, orderID, boxID uuid.UUID, actor Actor) error
	List(ctx context.Context, params pagination.Params, filters Filters) (*OrderList, error)
	Detail(ctx context.Context, orderID uuid.UUID) (*Detail, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	publisher broadcast.Publisher
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner, publisher broadcast.Publisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if publisher == nil {
		publisher = broadcast.NoopPublisher{}
	}
	return &service{
		repo:      repo,
		tx:        tx,
		publisher: publisher,
	}, nil
}

// OrderEvent is the payload broadcast for order-level events.
type OrderEvent struct {
	OrderID uuid.UUID         `json:"order_id"`
	Store   enums.StoreKey    `json:"store"`
	Name    string            `json:"name"`
	Source  enums.OrderSource `json:"source"`
	Status  enums.OrderStatus `json:"status"`
}

// ItemStatusEvent is broadcast when a department status changes.
type ItemStatusEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	ItemID        uuid.UUID           `json:"item_id"`
	FrameStatus   enums.CutStatus     `json:"frame_status"`
	MeshStatus    enums.CutStatus     `json:"mesh_status"`
	QualityStatus enums.QualityStatus `json:"quality_status"`
	OrderStatus   enums.OrderStatus   `json:"order_status"`
}

// BoxEvent is broadcast when a box is added or removed.
type BoxEvent struct {
	OrderID uuid.UUID `json:"order_id"`
	BoxID   uuid.UUID `json:"box_id"`
}

func (s *service) CreateManual(ctx context.Context, input CreateManualInput) (*models.Order, error) {
	if !input.Store.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid store key")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order name required")
	}
	if input.Actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	items, err := buildLineItems(input.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		Store:        input.Store,
		Name:         strings.TrimSpace(input.Name),
		Source:       enums.OrderSourceManual,
		Status:       enums.OrderStatusPending,
		CustomerNote: input.CustomerNote,
		Tags:         pq.StringArray(input.Tags),
		TotalPrice:   input.TotalPrice,
		Currency:     normalizeCurrency(input.Currency),
		ProcessedAt:  time.Now().UTC(),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateOrderLineItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line items")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Items = items
	s.publisher.Publish(ctx, enums.EventOrderCreated, actorRef(input.Actor), OrderEvent{
		OrderID: order.ID,
		Store:   order.Store,
		Name:    order.Name,
		Source:  order.Source,
		Status:  order.Status,
	})
	return order, nil
}

func (s *service) UpsertExternal(ctx context.Context, input ExternalOrderInput) (*models.Order, bool, error) {
	if !input.Store.IsValid() {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "invalid store key")
	}
	if strings.TrimSpace(input.ShopifyOrderID) == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "shopify order id required")
	}
	incoming, err := buildLineItems(input.Items)
	if err != nil {
		return nil, false, err
	}

	var (
		order   *models.Order
		created bool
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		existing, err := repo.FindOrderByShopifyID(ctx, input.Store, input.ShopifyOrderID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup order")
		}

		if existing == nil {
			shopifyID := input.ShopifyOrderID
			order = &models.Order{
				ShopifyOrderID: &shopifyID,
				Store:          input.Store,
				Name:           input.Name,
				Source:         enums.OrderSourceShopify,
				Status:         enums.OrderStatusPending,
				CustomerNote:   input.CustomerNote,
				Tags:           pq.StringArray(input.Tags),
				TotalPrice:     input.TotalPrice,
				Currency:       normalizeCurrency(input.Currency),
				ProcessedAt:    input.ProcessedAt,
			}
			if _, err := repo.CreateOrder(ctx, order); err != nil {
				if db.IsUniqueViolation(err, "ux_orders_store_shopify_id") {
					return pkgerrors.New(pkgerrors.CodeConflict, "order already ingested")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
			}
			for i := range incoming {
				incoming[i].OrderID = order.ID
			}
			if err := repo.CreateOrderLineItems(ctx, incoming); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line items")
			}
			order.Items = incoming
			created = true
			return nil
		}

		order = existing
		if err := s.mergeExternalItems(ctx, repo, existing, incoming); err != nil {
			return err
		}

		items, err := repo.FindOrderLineItemsByOrder(ctx, existing.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload line items")
		}
		order.Items = items

		updates := map[string]any{
			"name":          input.Name,
			"customer_note": input.CustomerNote,
			"total_price":   input.TotalPrice,
			"currency":      normalizeCurrency(input.Currency),
			"processed_at":  input.ProcessedAt,
			"status":        production.DeriveOrderStatus(items),
		}
		if len(input.Tags) > 0 {
			updates["tags"] = pq.StringArray(input.Tags)
		}
		if err := repo.UpdateOrder(ctx, existing.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}
		order.Status = updates["status"].(enums.OrderStatus)
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		s.publisher.Publish(ctx, enums.EventOrderCreated, nil, OrderEvent{
			OrderID: order.ID,
			Store:   order.Store,
			Name:    order.Name,
			Source:  order.Source,
			Status:  order.Status,
		})
	}
	return order, created, nil
}

// mergeExternalItems reconciles the stored items with the incoming payload.
// Matching items (by external id) keep their production statuses; only the
// customer-facing attributes are refreshed. Items dropped from the payload
// are removed, new ones created.
func (s *service) mergeExternalItems(ctx context.Context, repo Repository, order *models.Order, incoming []models.OrderLineItem) error {
	current, err := repo.FindOrderLineItemsByOrder(ctx, order.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line items")
	}

	byExternal := make(map[string]models.OrderLineItem, len(current))
	for _, item := range current {
		byExternal[item.ExternalID] = item
	}

	var toCreate []models.OrderLineItem
	seen := make(map[string]bool, len(incoming))
	for _, in := range incoming {
		seen[in.ExternalID] = true
		stored, ok := byExternal[in.ExternalID]
		if !ok {
			in.OrderID = order.ID
			toCreate = append(toCreate, in)
			continue
		}
		updates := map[string]any{
			"title":         in.Title,
			"quantity":      in.Quantity,
			"width_cm":      in.WidthCm,
			"height_cm":     in.HeightCm,
			"profile_color": in.ProfileColor,
			"orientation":   in.Orientation,
			"installation":  in.Installation,
			"threshold":     in.Threshold,
			"mesh_type":     in.MeshType,
			"curtain_type":  in.CurtainType,
			"fabric_color":  in.FabricColor,
			"closure_type":  in.ClosureType,
			"mounting_type": in.MountingType,
		}
		if err := repo.UpdateOrderLineItem(ctx, stored.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update line item")
		}
	}

	var toDelete []uuid.UUID
	for _, stored := range current {
		if !seen[stored.ExternalID] {
			toDelete = append(toDelete, stored.ID)
		}
	}
	if len(toDelete) > 0 {
		if err := repo.DeleteOrderLineItems(ctx, toDelete); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "prune line items")
		}
	}

	if len(toCreate) > 0 {
		if err := repo.CreateOrderLineItems(ctx, toCreate); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create line items")
		}
	}
	return nil
}

func (s *service) DeleteExternal(ctx context.Context, store enums.StoreKey, shopifyOrderID string) error {
	if !store.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid store key")
	}
	if strings.TrimSpace(shopifyOrderID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shopify order id required")
	}

	var deleted *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderByShopifyID(ctx, store, shopifyOrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup order")
		}
		if err := repo.DeleteOrder(ctx, order.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		deleted = order
		return nil
	})
	if err != nil {
		return err
	}

	if deleted != nil {
		s.publisher.Publish(ctx, enums.EventOrderDeleted, nil, OrderEvent{
			OrderID: deleted.ID,
			Store:   deleted.Store,
			Name:    deleted.Name,
			Source:  deleted.Source,
			Status:  deleted.Status,
		})
	}
	return nil
}

func (s *service) UpdateItemStatus(ctx context.Context, input UpdateItemStatusInput) (*ItemStatusResult, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.Actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	change := production.StatusChange{
		Frame:   input.Frame,
		Mesh:    input.Mesh,
		Quality: input.Quality,
	}
	if change.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no status fields provided")
	}
	if err := validateChange(change); err != nil {
		return nil, err
	}

	var result ItemStatusResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		item, err := repo.FindOrderLineItem(ctx, input.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line item")
		}
		if item.OrderID != input.OrderID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "line item does not belong to order")
		}

		if err := production.AuthorizeStatusChange(*item, change, input.Actor.Role); err != nil {
			return err
		}
		production.ApplyStatusChange(item, change)

		updates := map[string]any{
			"frame_status":   item.FrameStatus,
			"mesh_status":    item.MeshStatus,
			"quality_status": item.QualityStatus,
		}
		if err := repo.UpdateOrderLineItem(ctx, item.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update line item status")
		}

		items, err := repo.FindOrderLineItemsByOrder(ctx, input.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload line items")
		}
		derived := production.DeriveOrderStatus(items)

		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		if order.Status != derived {
			if err := repo.UpdateOrder(ctx, order.ID, map[string]any{"status": derived}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
			}
		}

		result = ItemStatusResult{Item: *item, OrderStatus: derived}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, enums.EventItemStatusChanged, actorRef(input.Actor), ItemStatusEvent{
		OrderID:       input.OrderID,
		ItemID:        result.Item.ID,
		FrameStatus:   result.Item.FrameStatus,
		MeshStatus:    result.Item.MeshStatus,
		QualityStatus: result.Item.QualityStatus,
		OrderStatus:   result.OrderStatus,
	})
	return &result, nil
}

func (s *service) OverrideStatus(ctx context.Context, input OverrideStatusInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	if !input.Actor.Role.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only admins may override order status")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		order = found
		if order.Status == input.Status {
			return nil
		}
		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{"status": input.Status}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "override order status")
		}
		order.Status = input.Status
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, enums.EventStatusOverridden, actorRef(input.Actor), OrderEvent{
		OrderID: order.ID,
		Store:   order.Store,
		Name:    order.Name,
		Source:  order.Source,
		Status:  order.Status,
	})
	return nil
}

func (s *service) Delete(ctx context.Context, orderID uuid.UUID, actor Actor) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !actor.Role.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only admins may delete orders")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := repo.FindOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		order = found
		if err := repo.DeleteOrder(ctx, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, enums.EventOrderDeleted, actorRef(actor), OrderEvent{
		OrderID: order.ID,
		Store:   order.Store,
		Name:    order.Name,
		Source:  order.Source,
		Status:  order.Status,
	})
	return nil
}

func (s *service) AddBox(ctx context.Context, input AddBoxInput) (*models.Box, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.LengthCm <= 0 || input.WidthCm <= 0 || input.HeightCm <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "box dimensions must be positive")
	}
	if input.WeightKg.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "box weight cannot be negative")
	}
	if input.Actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	box := &models.Box{
		OrderID:  input.OrderID,
		LengthCm: input.LengthCm,
		WidthCm:  input.WidthCm,
		HeightCm: input.HeightCm,
		WeightKg: input.WeightKg,
		ItemIDs:  dbtypes.UUIDArray(input.ItemIDs),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		items, err := repo.FindOrderLineItemsByOrder(ctx, input.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load line items")
		}
		if _, err := repo.FindOrder(ctx, input.OrderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		known := make(map[uuid.UUID]bool, len(items))
		for _, item := range items {
			known[item.ID] = true
		}
		for _, id := range input.ItemIDs {
			if !known[id] {
				return pkgerrors.New(pkgerrors.CodeValidation, "box references an item outside the order")
			}
		}

		if _, err := repo.CreateBox(ctx, box); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create box")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, enums.EventBoxAdded, actorRef(input.Actor), BoxEvent{
		OrderID: input.OrderID,
		BoxID:   box.ID,
	})
	return box, nil
}

func (s *service) RemoveBox(ctx context.Context, orderID, boxID uuid.UUID, actor Actor) error {
	if orderID == uuid.Nil || boxID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id and box id required")
	}
	if actor.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		box, err := repo.FindBox(ctx, boxID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "box not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load box")
		}
		if box.OrderID != orderID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "box does not belong to order")
		}
		if err := repo.DeleteBox(ctx, boxID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete box")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, enums.EventBoxRemoved, actorRef(actor), BoxEvent{
		OrderID: orderID,
		BoxID:   boxID,
	})
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*OrderList, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) Detail(ctx context.Context, orderID uuid.UUID) (*Detail, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrderDetail(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	detail := &Detail{Order: *order, Items: make([]ItemDetail, 0, len(order.Items))}
	for _, item := range order.Items {
		detail.Items = append(detail.Items, ItemDetail{
			Item:  item,
			Sheet: cutsheet.BuildSheet(item, order.Store),
		})
	}
	return detail, nil
}

func buildLineItems(inputs []LineItemInput) ([]models.OrderLineItem, error) {
	items := make([]models.OrderLineItem, 0, len(inputs))
	for i, in := range inputs {
		if in.WidthCm <= 0 || in.HeightCm <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: dimensions must be positive", i))
		}
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		externalID := strings.TrimSpace(in.ExternalID)
		if externalID == "" {
			externalID = uuid.NewString()
		}
		items = append(items, models.OrderLineItem{
			ExternalID:    externalID,
			Title:         in.Title,
			Quantity:      qty,
			WidthCm:       in.WidthCm,
			HeightCm:      in.HeightCm,
			ProfileColor:  in.ProfileColor,
			Orientation:   in.Orientation,
			Installation:  in.Installation,
			Threshold:     in.Threshold,
			MeshType:      in.MeshType,
			CurtainType:   in.CurtainType,
			FabricColor:   in.FabricColor,
			ClosureType:   in.ClosureType,
			MountingType:  in.MountingType,
			FrameStatus:   enums.CutStatusPending,
			MeshStatus:    enums.CutStatusPending,
			QualityStatus: enums.QualityStatusPending,
		})
	}
	return items, nil
}

func validateChange(change production.StatusChange) error {
	if change.Frame != nil && !change.Frame.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid frame status")
	}
	if change.Mesh != nil && !change.Mesh.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid mesh status")
	}
	if change.Quality != nil && !change.Quality.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid quality status")
	}
	return nil
}

func normalizeCurrency(currency string) string {
	c := strings.ToUpper(strings.TrimSpace(currency))
	if c == "" {
		return "EUR"
	}
	return c
}

func actorRef(actor Actor) *broadcast.ActorRef {
	if actor.UserID == uuid.Nil {
		return nil
	}
	return &broadcast.ActorRef{
		UserID: actor.UserID,
		Role:   actor.Role.String(),
	}
}
