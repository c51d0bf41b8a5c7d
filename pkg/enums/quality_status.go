package enums

import "fmt"

// QualityStatus tracks the quality/packing station for one line item.
type QualityStatus string

const (
	QualityStatusPending        QualityStatus = "pending"
	QualityStatusReadyToPackage QualityStatus = "ready_to_package"
	QualityStatusPacked         QualityStatus = "packed"
)

var validQualityStatuses = []QualityStatus{
	QualityStatusPending,
	QualityStatusReadyToPackage,
	QualityStatusPacked,
}

// String implements fmt.Stringer.
func (q QualityStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QualityStatus.
func (q QualityStatus) IsValid() bool {
	for _, candidate := range validQualityStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// ParseQualityStatus converts raw input into a QualityStatus.
func ParseQualityStatus(value string) (QualityStatus, error) {
	for _, candidate := range validQualityStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quality status %q", value)
}
