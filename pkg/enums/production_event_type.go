package enums

import "fmt"

// ProductionEventType classifies the events broadcast after order mutations.
type ProductionEventType string

const (
	EventOrderCreated      ProductionEventType = "order.created"
	EventOrderDeleted      ProductionEventType = "order.deleted"
	EventItemStatusChanged ProductionEventType = "order.item_status_changed"
	EventStatusOverridden  ProductionEventType = "order.status_overridden"
	EventBoxAdded          ProductionEventType = "order.box_added"
	EventBoxRemoved        ProductionEventType = "order.box_removed"
)

var validProductionEventTypes = []ProductionEventType{
	EventOrderCreated,
	EventOrderDeleted,
	EventItemStatusChanged,
	EventStatusOverridden,
	EventBoxAdded,
	EventBoxRemoved,
}

// String implements fmt.Stringer.
func (p ProductionEventType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductionEventType.
func (p ProductionEventType) IsValid() bool {
	for _, candidate := range validProductionEventTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductionEventType converts raw input into a ProductionEventType.
func ParseProductionEventType(value string) (ProductionEventType, error) {
	for _, candidate := range validProductionEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid production event type %q", value)
}
