package cutsheet

import "math"

// Two frame formula families exist: the production variant shown on item
// detail screens and the report variant used by exported cut lists. The call
// sites disagree on the offsets and neither is marked authoritative, so both
// are kept as separately named functions and the caller picks by purpose.

// FrameCut holds the frame-saw measurements for one item, in centimeters.
type FrameCut struct {
	En    float64
	Boy   float64
	Kanat float64
	// FlatExtra is only set for flat-threshold items on the production
	// variant: the extra profile piece, rounded to one decimal.
	FlatExtra *float64
}

// MeshCut holds the mesh-table measurements for one item.
type MeshCut struct {
	PleatCount   float64
	Length       float64
	CordLength   float64
	StripChannel float64
	StripSash    float64
}

// FrameProductionCut computes the frame measurements for the shop-floor item
// view. Vertical items swap width and height for the En/Boy axes; the Kanat
// offset depends on the threshold variant.
func FrameProductionCut(widthCm, heightCm float64, vertical, flatThreshold bool) FrameCut {
	en := widthCm
	boy := heightCm
	if vertical {
		en, boy = heightCm, widthCm
	}

	cut := FrameCut{
		En:  en - 7,
		Boy: boy - 7,
	}

	if flatThreshold {
		cut.Kanat = heightCm - 4.9
		extra := roundTenth(widthCm - 3.4)
		cut.FlatExtra = &extra
	} else {
		cut.Kanat = heightCm - 7.7
	}

	return cut
}

// FrameReportCut computes the frame measurements used by exported cut lists.
// No orientation swap and no threshold branch.
func FrameReportCut(widthCm, heightCm float64) FrameCut {
	return FrameCut{
		En:    widthCm - 5,
		Boy:   heightCm - 5,
		Kanat: heightCm - 5.5,
	}
}

// MeshProductionCut computes the mesh-table measurements for the shop-floor
// item view. frameKanat is the Kanat value from FrameProductionCut for the
// same item.
func MeshProductionCut(widthCm, heightCm float64, vertical bool, frameKanat float64) MeshCut {
	pleatAxis := widthCm
	lengthAxis := heightCm
	if vertical {
		pleatAxis, lengthAxis = heightCm, widthCm
	}

	length := lengthAxis - 4.2
	return MeshCut{
		PleatCount:   pleatAxis / 2,
		Length:       length,
		CordLength:   widthCm + heightCm + 20,
		StripChannel: length - 2,
		StripSash:    frameKanat - 1,
	}
}

// MeshReportCut computes the simplified mesh measurements for exported cut
// lists: pleat count from width, length from height, no orientation swap.
func MeshReportCut(widthCm, heightCm float64) MeshCut {
	return MeshCut{
		PleatCount: widthCm / 2,
		Length:     heightCm - 4.2,
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
