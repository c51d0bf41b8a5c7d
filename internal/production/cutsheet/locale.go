package cutsheet

import (
	"strings"

	"github.com/plissemesh/production-backend/pkg/enums"
)

// Attribute names one of the categorical line-item fields the storefronts
// localize.
type Attribute string

const (
	AttributeOrientation  Attribute = "orientation"
	AttributeInstallation Attribute = "installation"
	AttributeThreshold    Attribute = "threshold"
	AttributeMeshType     Attribute = "mesh_type"
	AttributeCurtainType  Attribute = "curtain_type"
	AttributeClosureType  Attribute = "closure_type"
	AttributeMountingType Attribute = "mounting_type"
)

// Canonical shop-floor labels the guard and calculator branch on.
const (
	CanonicalVertical      = "Dikey"
	CanonicalHorizontal    = "Yatay"
	CanonicalFlatThreshold = "Düz"
)

// dictionaries maps each storefront's local option text onto the Turkish
// production vocabulary. These mirror the option values configured in the
// five Shopify themes; legacy or renamed options simply fall through
// unmapped.
var dictionaries = map[enums.StoreKey]map[Attribute]map[string]string{
	enums.StoreKeyNL: {
		AttributeOrientation: {
			"Verticaal":   CanonicalVertical,
			"Horizontaal": CanonicalHorizontal,
		},
		AttributeInstallation: {
			"Zelf monteren":       "Müşteri Montajı",
			"Gemonteerd geleverd": "Montajlı",
		},
		AttributeThreshold: {
			"Vlakke drempel": CanonicalFlatThreshold,
			"Standaard":      "Standart",
		},
		AttributeMeshType: {
			"Standaard gaas":    "Standart Tül",
			"Pollenwerend gaas": "Polen Tülü",
		},
		AttributeCurtainType: {
			"Enkel":  "Tek Kanat",
			"Dubbel": "Çift Kanat",
		},
		AttributeClosureType: {
			"Magneet":     "Mıknatıs",
			"Klittenband": "Cırt Bant",
		},
		AttributeMountingType: {
			"In het kozijn": "Kasa İçi",
			"Op het kozijn": "Kasa Üstü",
		},
	},
	enums.StoreKeyDE: {
		AttributeOrientation: {
			"Vertikal":   CanonicalVertical,
			"Horizontal": CanonicalHorizontal,
		},
		AttributeInstallation: {
			"Selbstmontage":      "Müşteri Montajı",
			"Montiert geliefert": "Montajlı",
		},
		AttributeThreshold: {
			"Flache Schwelle": CanonicalFlatThreshold,
			"Standard":        "Standart",
		},
		AttributeMeshType: {
			"Standardgewebe":     "Standart Tül",
			"Pollenschutzgewebe": "Polen Tülü",
		},
		AttributeCurtainType: {
			"Einteilig":  "Tek Kanat",
			"Zweiteilig": "Çift Kanat",
		},
		AttributeClosureType: {
			"Magnet":    "Mıknatıs",
			"Klettband": "Cırt Bant",
		},
		AttributeMountingType: {
			"In der Laibung": "Kasa İçi",
			"Auf dem Rahmen": "Kasa Üstü",
		},
	},
	enums.StoreKeyUK: {
		AttributeOrientation: {
			"Vertical":   CanonicalVertical,
			"Horizontal": CanonicalHorizontal,
		},
		AttributeInstallation: {
			"Self assembly":       "Müşteri Montajı",
			"Delivered assembled": "Montajlı",
		},
		AttributeThreshold: {
			"Flat threshold": CanonicalFlatThreshold,
			"Standard":       "Standart",
		},
		AttributeMeshType: {
			"Standard mesh": "Standart Tül",
			"Pollen mesh":   "Polen Tülü",
		},
		AttributeCurtainType: {
			"Single": "Tek Kanat",
			"Double": "Çift Kanat",
		},
		AttributeClosureType: {
			"Magnet": "Mıknatıs",
			"Velcro": "Cırt Bant",
		},
		AttributeMountingType: {
			"Inside recess": "Kasa İçi",
			"Face fix":      "Kasa Üstü",
		},
	},
	enums.StoreKeyFR: {
		AttributeOrientation: {
			"Vertical":   CanonicalVertical,
			"Horizontal": CanonicalHorizontal,
		},
		AttributeInstallation: {
			"À monter soi-même": "Müşteri Montajı",
			"Livré monté":       "Montajlı",
		},
		AttributeThreshold: {
			"Seuil plat": CanonicalFlatThreshold,
			"Standard":   "Standart",
		},
		AttributeMeshType: {
			"Toile standard":    "Standart Tül",
			"Toile anti-pollen": "Polen Tülü",
		},
		AttributeCurtainType: {
			"Simple": "Tek Kanat",
			"Double": "Çift Kanat",
		},
		AttributeClosureType: {
			"Aimant": "Mıknatıs",
			"Velcro": "Cırt Bant",
		},
		AttributeMountingType: {
			"Dans l'embrasure": "Kasa İçi",
			"Sur le cadre":     "Kasa Üstü",
		},
	},
	enums.StoreKeyDK: {
		AttributeOrientation: {
			"Lodret":  CanonicalVertical,
			"Vandret": CanonicalHorizontal,
		},
		AttributeInstallation: {
			"Selvmontering":    "Müşteri Montajı",
			"Leveres monteret": "Montajlı",
		},
		AttributeThreshold: {
			"Flad bundskinne": CanonicalFlatThreshold,
			"Standard":        "Standart",
		},
		AttributeMeshType: {
			"Standardnet": "Standart Tül",
			"Pollennet":   "Polen Tülü",
		},
		AttributeCurtainType: {
			"Enkelt":  "Tek Kanat",
			"Dobbelt": "Çift Kanat",
		},
		AttributeClosureType: {
			"Magnet": "Mıknatıs",
			"Velcro": "Cırt Bant",
		},
		AttributeMountingType: {
			"I falsen":  "Kasa İçi",
			"På rammen": "Kasa Üstü",
		},
	},
}

// Canonical maps a storefront option value onto its production label. Unknown
// stores, attributes, or values return the input unchanged: the shop floor
// always sees something, never an error. This fallback is load-bearing for
// legacy orders whose option text predates the current theme copy.
func Canonical(store enums.StoreKey, attr Attribute, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	attrs, ok := dictionaries[store]
	if !ok {
		return value
	}
	mapping, ok := attrs[attr]
	if !ok {
		return value
	}
	if label, ok := mapping[trimmed]; ok {
		return label
	}
	return value
}

// IsVertical reports whether the store-local orientation value resolves to
// the vertical production variant.
func IsVertical(store enums.StoreKey, orientation string) bool {
	return Canonical(store, AttributeOrientation, orientation) == CanonicalVertical
}

// IsFlatThreshold reports whether the store-local threshold value resolves to
// the flat-threshold production variant.
func IsFlatThreshold(store enums.StoreKey, threshold string) bool {
	return Canonical(store, AttributeThreshold, threshold) == CanonicalFlatThreshold
}
