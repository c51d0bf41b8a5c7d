package enums

import "fmt"

// CutStatus tracks a single cutting station (frame saw or mesh table) for one
// line item.
type CutStatus string

const (
	CutStatusPending  CutStatus = "pending"
	CutStatusComplete CutStatus = "complete"
)

var validCutStatuses = []CutStatus{
	CutStatusPending,
	CutStatusComplete,
}

// String implements fmt.Stringer.
func (c CutStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CutStatus.
func (c CutStatus) IsValid() bool {
	for _, candidate := range validCutStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCutStatus converts raw input into a CutStatus.
func ParseCutStatus(value string) (CutStatus, error) {
	for _, candidate := range validCutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cut status %q", value)
}
