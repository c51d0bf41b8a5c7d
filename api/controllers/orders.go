package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plissemesh/production-backend/api/middleware"
	"github.com/plissemesh/production-backend/api/responses"
	"github.com/plissemesh/production-backend/api/validators"
	"github.com/plissemesh/production-backend/internal/orders"
	"github.com/plissemesh/production-backend/internal/reports"
	"github.com/plissemesh/production-backend/pkg/enums"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
	"github.com/plissemesh/production-backend/pkg/logger"
	"github.com/plissemesh/production-backend/pkg/pagination"
)

// OrdersList serves the paginated production queue with optional filters.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		filters, err := buildOrderFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrderDetail returns the full order view with computed cut sheets.
func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Detail(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// OrderCutSheet streams the printable Excel cut list for an order.
func OrderCutSheet(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename, content, err := svc.OrderCutSheet(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}
}

type itemStatusRequest struct {
	FrameStatus   *string `json:"frame_status,omitempty"`
	MeshStatus    *string `json:"mesh_status,omitempty"`
	QualityStatus *string `json:"quality_status,omitempty"`
}

// ItemStatusUpdate applies a department status change to a line item.
func ItemStatusUpdate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := validators.ParseUUIDParam(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body itemStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.UpdateItemStatusInput{
			OrderID: orderID,
			ItemID:  itemID,
			Actor:   actorFromContext(r),
		}
		if body.FrameStatus != nil {
			status, err := enums.ParseCutStatus(*body.FrameStatus)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "frame_status"))
				return
			}
			input.Frame = &status
		}
		if body.MeshStatus != nil {
			status, err := enums.ParseCutStatus(*body.MeshStatus)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "mesh_status"))
				return
			}
			input.Mesh = &status
		}
		if body.QualityStatus != nil {
			status, err := enums.ParseQualityStatus(*body.QualityStatus)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "quality_status"))
				return
			}
			input.Quality = &status
		}

		result, err := svc.UpdateItemStatus(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type addBoxRequest struct {
	LengthCm float64  `json:"length_cm" validate:"required,gt=0"`
	WidthCm  float64  `json:"width_cm" validate:"required,gt=0"`
	HeightCm float64  `json:"height_cm" validate:"required,gt=0"`
	WeightKg string   `json:"weight_kg,omitempty"`
	ItemIDs  []string `json:"item_ids" validate:"required,min=1"`
}

// BoxAdd registers a packed box against an order.
func BoxAdd(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addBoxRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		weight := decimal.Zero
		if strings.TrimSpace(body.WeightKg) != "" {
			weight, err = decimal.NewFromString(strings.TrimSpace(body.WeightKg))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "weight_kg"))
				return
			}
		}

		itemIDs := make([]uuid.UUID, 0, len(body.ItemIDs))
		for _, raw := range body.ItemIDs {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "item_ids"))
				return
			}
			itemIDs = append(itemIDs, id)
		}

		box, err := svc.AddBox(r.Context(), orders.AddBoxInput{
			OrderID:  orderID,
			LengthCm: body.LengthCm,
			WidthCm:  body.WidthCm,
			HeightCm: body.HeightCm,
			WeightKg: weight,
			ItemIDs:  itemIDs,
			Actor:    actorFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, box)
	}
}

// BoxRemove deletes a box from an order.
func BoxRemove(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		boxID, err := validators.ParseUUIDParam(r, "boxID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveBox(r.Context(), orderID, boxID, actorFromContext(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

func actorFromContext(r *http.Request) orders.Actor {
	return orders.Actor{
		UserID: middleware.UserIDFromContext(r.Context()),
		Role:   middleware.RoleFromContext(r.Context()),
	}
}

func buildOrderFilters(r *http.Request) (orders.Filters, error) {
	var filters orders.Filters
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("store")); raw != "" {
		store, err := enums.ParseStoreKey(raw)
		if err != nil {
			return orders.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "store")
		}
		filters.Store = &store
	}
	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return orders.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status")
		}
		filters.Status = &status
	}
	if raw := strings.TrimSpace(query.Get("source")); raw != "" {
		source, err := enums.ParseOrderSource(raw)
		if err != nil {
			return orders.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "source")
		}
		filters.Source = &source
	}
	if raw := strings.TrimSpace(query.Get("date_from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return orders.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date_from")
		}
		filters.DateFrom = &from
	}
	if raw := strings.TrimSpace(query.Get("date_to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return orders.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date_to")
		}
		filters.DateTo = &to
	}
	filters.Query = validators.SanitizeString(query.Get("q"), 120)

	return filters, nil
}
