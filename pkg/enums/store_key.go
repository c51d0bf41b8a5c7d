package enums

import "fmt"

// StoreKey identifies one of the regional Shopify storefronts.
type StoreKey string

const (
	StoreKeyNL StoreKey = "nl"
	StoreKeyDE StoreKey = "de"
	StoreKeyUK StoreKey = "uk"
	StoreKeyFR StoreKey = "fr"
	StoreKeyDK StoreKey = "dk"
)

var validStoreKeys = []StoreKey{
	StoreKeyNL,
	StoreKeyDE,
	StoreKeyUK,
	StoreKeyFR,
	StoreKeyDK,
}

// AllStoreKeys returns every configured storefront key.
func AllStoreKeys() []StoreKey {
	keys := make([]StoreKey, len(validStoreKeys))
	copy(keys, validStoreKeys)
	return keys
}

// String implements fmt.Stringer.
func (s StoreKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StoreKey.
func (s StoreKey) IsValid() bool {
	for _, candidate := range validStoreKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStoreKey converts raw input into a StoreKey.
func ParseStoreKey(value string) (StoreKey, error) {
	for _, candidate := range validStoreKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid store key %q", value)
}
