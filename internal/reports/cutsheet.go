package reports

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/plissemesh/production-backend/internal/orders"
	"github.com/plissemesh/production-backend/internal/production/cutsheet"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
)

type orderReader interface {
	Detail(ctx context.Context, orderID uuid.UUID) (*orders.Detail, error)
}

// Service renders printable cut lists for the shop floor.
type Service interface {
	OrderCutSheet(ctx context.Context, orderID uuid.UUID) (filename string, content []byte, err error)
}

type service struct {
	orders orderReader
}

// NewService builds the report service on top of the orders read path.
func NewService(ordersSvc orderReader) (Service, error) {
	if ordersSvc == nil {
		return nil, fmt.Errorf("orders service is required")
	}
	return &service{orders: ordersSvc}, nil
}

// Column layout of the exported cut list. Headers are Turkish because the
// document goes straight to the sawing and mesh stations.
var cutSheetHeaders = []string{
	"Sıra", "Ürün", "Adet",
	"En", "Boy", "Kanat",
	"Pile Sayısı", "Tül Boyu",
	"Profil Rengi", "Renk Kodu",
	"Yön", "Eşik", "Tül", "Montaj",
}

// OrderCutSheet builds one xlsx workbook for the order: a single sheet, one
// row per line item, using the report formula variants.
func (s *service) OrderCutSheet(ctx context.Context, orderID uuid.UUID) (string, []byte, error) {
	detail, err := s.orders.Detail(ctx, orderID)
	if err != nil {
		return "", nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Kesim Listesi"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create style")
	}

	// Order banner above the table.
	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("%s (%s)", detail.Order.Name, detail.Order.Store)); err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write banner")
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", headerStyle); err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "style banner")
	}

	const headerRow = 3
	for col, header := range cutSheetHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cell")
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write header")
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "style header")
		}
	}

	for i, item := range detail.Items {
		frame := cutsheet.FrameReportCut(item.Item.WidthCm, item.Item.HeightCm)
		mesh := cutsheet.MeshReportCut(item.Item.WidthCm, item.Item.HeightCm)

		values := []any{
			i + 1,
			item.Item.Title,
			item.Item.Quantity,
			frame.En,
			frame.Boy,
			frame.Kanat,
			mesh.PleatCount,
			mesh.Length,
			item.Sheet.ProfileColor,
			item.Sheet.ProfileColorCode,
			item.Sheet.Orientation,
			item.Sheet.Threshold,
			item.Sheet.MeshType,
			item.Sheet.MountingType,
		}
		row := headerRow + 1 + i
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cell")
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write row")
			}
		}
	}

	if err := f.SetColWidth(sheet, "B", "B", 32); err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set column width")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write workbook")
	}

	filename := fmt.Sprintf("kesim-%s.xlsx", sanitizeFilename(detail.Order.Name))
	return filename, buf.Bytes(), nil
}

func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == '#', r == ' ':
			// dropped
		default:
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "siparis"
	}
	return string(out)
}
