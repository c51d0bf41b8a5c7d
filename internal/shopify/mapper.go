package shopify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/plissemesh/production-backend/internal/orders"
	"github.com/plissemesh/production-backend/pkg/enums"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
)

// propertyKind identifies which line-item attribute a storefront property
// feeds. Each store names its properties in its own language, so resolution
// goes through a per-store dictionary with an English fallback.
type propertyKind int

const (
	kindUnknown propertyKind = iota
	kindWidth
	kindHeight
	kindProfileColor
	kindOrientation
	kindInstallation
	kindThreshold
	kindMeshType
	kindCurtainType
	kindFabricColor
	kindClosureType
	kindMountingType
)

// englishKeys doubles as the dictionary for the UK store and as the fallback
// for properties a regional storefront sends in English.
var englishKeys = map[string]propertyKind{
	"width":          kindWidth,
	"height":         kindHeight,
	"profile colour": kindProfileColor,
	"profile color":  kindProfileColor,
	"orientation":    kindOrientation,
	"installation":   kindInstallation,
	"threshold":      kindThreshold,
	"mesh":           kindMeshType,
	"mesh type":      kindMeshType,
	"curtain type":   kindCurtainType,
	"fabric colour":  kindFabricColor,
	"fabric color":   kindFabricColor,
	"closure":        kindClosureType,
	"mounting":       kindMountingType,
}

var propertyKeysByStore = map[enums.StoreKey]map[string]propertyKind{
	enums.StoreKeyNL: {
		"breedte":      kindWidth,
		"hoogte":       kindHeight,
		"profielkleur": kindProfileColor,
		"uitvoering":   kindOrientation,
		"montage":      kindInstallation,
		"drempel":      kindThreshold,
		"gaas":         kindMeshType,
		"type gordijn": kindCurtainType,
		"stofkleur":    kindFabricColor,
		"sluiting":     kindClosureType,
		"bevestiging":  kindMountingType,
	},
	enums.StoreKeyDE: {
		"breite":      kindWidth,
		"höhe":        kindHeight,
		"profilfarbe": kindProfileColor,
		"ausführung":  kindOrientation,
		"montage":     kindInstallation,
		"schwelle":    kindThreshold,
		"gewebe":      kindMeshType,
		"vorhangtyp":  kindCurtainType,
		"stofffarbe":  kindFabricColor,
		"verschluss":  kindClosureType,
		"befestigung": kindMountingType,
	},
	enums.StoreKeyUK: englishKeys,
	enums.StoreKeyFR: {
		"largeur":           kindWidth,
		"hauteur":           kindHeight,
		"couleur du profil": kindProfileColor,
		"orientation":       kindOrientation,
		"pose":              kindInstallation,
		"seuil":             kindThreshold,
		"toile":             kindMeshType,
		"type de rideau":    kindCurtainType,
		"couleur du tissu":  kindFabricColor,
		"fermeture":         kindClosureType,
		"fixation":          kindMountingType,
	},
	enums.StoreKeyDK: {
		"bredde":      kindWidth,
		"højde":       kindHeight,
		"profilfarve": kindProfileColor,
		"udførelse":   kindOrientation,
		"montering":   kindInstallation,
		"tærskel":     kindThreshold,
		"net":         kindMeshType,
		"gardintype":  kindCurtainType,
		"stoffarve":   kindFabricColor,
		"lukning":     kindClosureType,
		"fastgørelse": kindMountingType,
	},
}

func resolvePropertyKind(store enums.StoreKey, name string) propertyKind {
	key := strings.ToLower(strings.TrimSpace(name))
	if dict, ok := propertyKeysByStore[store]; ok {
		if kind, ok := dict[key]; ok {
			return kind
		}
	}
	if kind, ok := englishKeys[key]; ok {
		return kind
	}
	return kindUnknown
}

// parseDimension accepts storefront dimension strings such as "120",
// "120,5" and "120.5 cm".
func parseDimension(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSuffix(s, "cm")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse dimension %q: %w", raw, err)
	}
	return value, nil
}

// MapOrder converts a Shopify order payload into the ingest input. Property
// names are resolved through the store's dictionary; unknown properties are
// ignored so storefront additions never break ingest.
func MapOrder(store enums.StoreKey, payload OrderPayload) (orders.ExternalOrderInput, error) {
	if payload.ID == 0 {
		return orders.ExternalOrderInput{}, pkgerrors.New(pkgerrors.CodeValidation, "order id missing in payload")
	}

	items := make([]orders.LineItemInput, 0, len(payload.LineItems))
	for _, li := range payload.LineItems {
		item := orders.LineItemInput{
			ExternalID: strconv.FormatInt(li.ID, 10),
			Title:      li.Title,
			Quantity:   li.Quantity,
		}
		for _, prop := range li.Properties {
			value := strings.TrimSpace(prop.Value)
			if value == "" {
				continue
			}
			switch resolvePropertyKind(store, prop.Name) {
			case kindWidth:
				width, err := parseDimension(value)
				if err != nil {
					return orders.ExternalOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err,
						fmt.Sprintf("line item %d width", li.ID))
				}
				item.WidthCm = width
			case kindHeight:
				height, err := parseDimension(value)
				if err != nil {
					return orders.ExternalOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err,
						fmt.Sprintf("line item %d height", li.ID))
				}
				item.HeightCm = height
			case kindProfileColor:
				item.ProfileColor = value
			case kindOrientation:
				item.Orientation = value
			case kindInstallation:
				item.Installation = value
			case kindThreshold:
				item.Threshold = value
			case kindMeshType:
				item.MeshType = value
			case kindCurtainType:
				item.CurtainType = value
			case kindFabricColor:
				item.FabricColor = value
			case kindClosureType:
				item.ClosureType = value
			case kindMountingType:
				item.MountingType = value
			}
		}
		if item.WidthCm <= 0 || item.HeightCm <= 0 {
			return orders.ExternalOrderInput{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("line item %d missing dimensions", li.ID))
		}
		items = append(items, item)
	}

	totalPrice := decimal.Zero
	if strings.TrimSpace(payload.TotalPrice) != "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(payload.TotalPrice))
		if err != nil {
			return orders.ExternalOrderInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse total price")
		}
		totalPrice = parsed
	}

	var note *string
	if trimmed := strings.TrimSpace(payload.Note); trimmed != "" {
		note = &trimmed
	}

	return orders.ExternalOrderInput{
		Store:          store,
		ShopifyOrderID: strconv.FormatInt(payload.ID, 10),
		Name:           payload.Name,
		CustomerNote:   note,
		Tags:           splitTags(payload.Tags),
		TotalPrice:     totalPrice,
		Currency:       payload.Currency,
		ProcessedAt:    payload.ProcessedAt.UTC(),
		Items:          items,
	}, nil
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
