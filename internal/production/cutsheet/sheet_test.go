package cutsheet

import (
	"testing"

	"github.com/plissemesh/production-backend/pkg/db/models"
	"github.com/plissemesh/production-backend/pkg/enums"
)

func TestBuildSheet_VerticalFlatNL(t *testing.T) {
	item := models.OrderLineItem{
		WidthCm:      150,
		HeightCm:     200,
		Orientation:  "Verticaal",
		Threshold:    "Vlakke drempel",
		ProfileColor: "Wit 9016",
		MeshType:     "Pollenwerend gaas",
		ClosureType:  "Magneet",
	}

	sheet := BuildSheet(item, enums.StoreKeyNL)

	if !sheet.Vertical || !sheet.FlatThreshold {
		t.Fatalf("expected vertical flat sheet, got %+v", sheet)
	}
	if sheet.Frame.En != 193 || sheet.Frame.Boy != 143 {
		t.Fatalf("frame axes wrong: %+v", sheet.Frame)
	}
	if sheet.Frame.Kanat != 195.1 {
		t.Fatalf("flat Kanat wrong: %v", sheet.Frame.Kanat)
	}
	if sheet.Frame.FlatExtra == nil || *sheet.Frame.FlatExtra != 146.6 {
		t.Fatalf("flat extra wrong: %+v", sheet.Frame.FlatExtra)
	}
	if sheet.Mesh.PleatCount != 100 {
		t.Fatalf("pleat count wrong: %v", sheet.Mesh.PleatCount)
	}
	if sheet.ProfileColor != "Beyaz" || sheet.ProfileColorCode != "9016" {
		t.Fatalf("color mapping wrong: %q %q", sheet.ProfileColor, sheet.ProfileColorCode)
	}
	if sheet.Orientation != "Dikey" {
		t.Fatalf("orientation label wrong: %q", sheet.Orientation)
	}
	if sheet.MeshType != "Polen Tülü" {
		t.Fatalf("mesh type label wrong: %q", sheet.MeshType)
	}
	if sheet.ClosureType != "Mıknatıs" {
		t.Fatalf("closure label wrong: %q", sheet.ClosureType)
	}
}

func TestBuildSheet_UnknownValuesPassThrough(t *testing.T) {
	item := models.OrderLineItem{
		WidthCm:     100,
		HeightCm:    120,
		Orientation: "Schräg",
		Threshold:   "Sondermaß",
		FabricColor: "Grau",
	}

	sheet := BuildSheet(item, enums.StoreKeyDE)

	if sheet.Vertical {
		t.Fatal("unknown orientation must not count as vertical")
	}
	if sheet.FlatThreshold {
		t.Fatal("unknown threshold must not count as flat")
	}
	if sheet.Orientation != "Schräg" || sheet.Threshold != "Sondermaß" {
		t.Fatalf("expected passthrough labels, got %q %q", sheet.Orientation, sheet.Threshold)
	}
	if sheet.FabricColor != "Grau" {
		t.Fatalf("fabric color is never mapped, got %q", sheet.FabricColor)
	}
	// Horizontal axes: En from width, Boy from height.
	if sheet.Frame.En != 93 || sheet.Frame.Boy != 113 {
		t.Fatalf("frame axes wrong: %+v", sheet.Frame)
	}
}

func TestBuildSheet_Deterministic(t *testing.T) {
	item := models.OrderLineItem{WidthCm: 80.5, HeightCm: 210.3, Orientation: "Vertical"}
	first := BuildSheet(item, enums.StoreKeyUK)
	second := BuildSheet(item, enums.StoreKeyUK)
	if first != second {
		if first.Frame != second.Frame || first.Mesh != second.Mesh {
			t.Fatalf("sheet must be referentially transparent: %+v vs %+v", first, second)
		}
	}
}
