package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/plissemesh/production-backend/api/responses"
	"github.com/plissemesh/production-backend/api/validators"
	"github.com/plissemesh/production-backend/internal/orders"
	"github.com/plissemesh/production-backend/pkg/enums"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
	"github.com/plissemesh/production-backend/pkg/logger"
)

type manualLineItemRequest struct {
	Title        string  `json:"title" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	WidthCm      float64 `json:"width_cm" validate:"required,gt=0"`
	HeightCm     float64 `json:"height_cm" validate:"required,gt=0"`
	ProfileColor string  `json:"profile_color" validate:"required"`
	Orientation  string  `json:"orientation,omitempty"`
	Installation string  `json:"installation,omitempty"`
	Threshold    string  `json:"threshold,omitempty"`
	MeshType     string  `json:"mesh_type,omitempty"`
	CurtainType  string  `json:"curtain_type,omitempty"`
	FabricColor  string  `json:"fabric_color,omitempty"`
	ClosureType  string  `json:"closure_type,omitempty"`
	MountingType string  `json:"mounting_type,omitempty"`
}

type manualOrderRequest struct {
	Store        string                  `json:"store" validate:"required"`
	Name         string                  `json:"name,omitempty"`
	CustomerNote *string                 `json:"customer_note,omitempty"`
	Tags         []string                `json:"tags,omitempty"`
	TotalPrice   string                  `json:"total_price,omitempty"`
	Currency     string                  `json:"currency,omitempty"`
	Items        []manualLineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// AdminOrderCreate records a manual order taken over phone or email.
func AdminOrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var body manualOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := enums.ParseStoreKey(body.Store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "store"))
			return
		}

		total := decimal.Zero
		if strings.TrimSpace(body.TotalPrice) != "" {
			total, err = decimal.NewFromString(strings.TrimSpace(body.TotalPrice))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "total_price"))
				return
			}
		}

		items := make([]orders.LineItemInput, 0, len(body.Items))
		for _, item := range body.Items {
			items = append(items, orders.LineItemInput{
				Title:        validators.SanitizeString(item.Title, 200),
				Quantity:     item.Quantity,
				WidthCm:      item.WidthCm,
				HeightCm:     item.HeightCm,
				ProfileColor: validators.SanitizeString(item.ProfileColor, 60),
				Orientation:  validators.SanitizeString(item.Orientation, 60),
				Installation: validators.SanitizeString(item.Installation, 60),
				Threshold:    validators.SanitizeString(item.Threshold, 60),
				MeshType:     validators.SanitizeString(item.MeshType, 60),
				CurtainType:  validators.SanitizeString(item.CurtainType, 60),
				FabricColor:  validators.SanitizeString(item.FabricColor, 60),
				ClosureType:  validators.SanitizeString(item.ClosureType, 60),
				MountingType: validators.SanitizeString(item.MountingType, 60),
			})
		}

		order, err := svc.CreateManual(r.Context(), orders.CreateManualInput{
			Store:        store,
			Name:         validators.SanitizeString(body.Name, 80),
			CustomerNote: body.CustomerNote,
			Tags:         body.Tags,
			TotalPrice:   total,
			Currency:     strings.ToUpper(strings.TrimSpace(body.Currency)),
			Items:        items,
			Actor:        actorFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// AdminOrderDelete removes an order and everything hanging off it.
func AdminOrderDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), orderID, actorFromContext(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type statusOverrideRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminStatusOverride forces the derived order status to an explicit value.
func AdminStatusOverride(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body statusOverrideRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status"))
			return
		}

		if err := svc.OverrideStatus(r.Context(), orders.OverrideStatusInput{
			OrderID: orderID,
			Status:  status,
			Actor:   actorFromContext(r),
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": status.String()})
	}
}
