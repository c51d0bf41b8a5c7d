package production

import (
	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
)

// DeriveOrderStatus reduces the per-item department statuses to one
// order-level status. Pure and order-insensitive: permuting items yields the
// same result. An empty item set is always pending. The all-packed check runs
// before the all-pending check.
func DeriveOrderStatus(items []models.OrderLineItem) enums.OrderStatus {
	if len(items) == 0 {
		return enums.OrderStatusPending
	}

	allPacked := true
	allPending := true
	for _, item := range items {
		if item.QualityStatus != enums.QualityStatusPacked {
			allPacked = false
		}
		if item.FrameStatus != enums.CutStatusPending ||
			item.MeshStatus != enums.CutStatusPending ||
			item.QualityStatus != enums.QualityStatusPending {
			allPending = false
		}
	}

	switch {
	case allPacked:
		return enums.OrderStatusCompleted
	case allPending:
		return enums.OrderStatusPending
	default:
		return enums.OrderStatusInProgress
	}
}
