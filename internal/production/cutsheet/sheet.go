package cutsheet

import (
	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
)

// Sheet is the display bundle for one line item: the frame and mesh
// measurements plus every categorical attribute mapped to the shop-floor
// vocabulary. Computed on read, never persisted.
type Sheet struct {
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`

	Vertical      bool `json:"vertical"`
	FlatThreshold bool `json:"flat_threshold"`

	Frame FrameCut `json:"frame"`
	Mesh  MeshCut  `json:"mesh"`

	ProfileColor     string `json:"profile_color"`
	ProfileColorCode string `json:"profile_color_code"`
	Orientation      string `json:"orientation"`
	Installation     string `json:"installation"`
	Threshold        string `json:"threshold"`
	MeshType         string `json:"mesh_type"`
	CurtainType      string `json:"curtain_type"`
	FabricColor      string `json:"fabric_color"`
	ClosureType      string `json:"closure_type"`
	MountingType     string `json:"mounting_type"`
}

// BuildSheet computes the production cut sheet for one line item using the
// production formula variants. Unrecognized attribute values pass through
// unchanged.
func BuildSheet(item models.OrderLineItem, store enums.StoreKey) Sheet {
	vertical := IsVertical(store, item.Orientation)
	flat := IsFlatThreshold(store, item.Threshold)

	frame := FrameProductionCut(item.WidthCm, item.HeightCm, vertical, flat)
	mesh := MeshProductionCut(item.WidthCm, item.HeightCm, vertical, frame.Kanat)

	return Sheet{
		WidthCm:  item.WidthCm,
		HeightCm: item.HeightCm,

		Vertical:      vertical,
		FlatThreshold: flat,

		Frame: frame,
		Mesh:  mesh,

		ProfileColor:     ProfileColorName(item.ProfileColor),
		ProfileColorCode: ProfileColorCode(item.ProfileColor),
		Orientation:      Canonical(store, AttributeOrientation, item.Orientation),
		Installation:     Canonical(store, AttributeInstallation, item.Installation),
		Threshold:        Canonical(store, AttributeThreshold, item.Threshold),
		MeshType:         Canonical(store, AttributeMeshType, item.MeshType),
		CurtainType:      Canonical(store, AttributeCurtainType, item.CurtainType),
		FabricColor:      item.FabricColor,
		ClosureType:      Canonical(store, AttributeClosureType, item.ClosureType),
		MountingType:     Canonical(store, AttributeMountingType, item.MountingType),
	}
}
