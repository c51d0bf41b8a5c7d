package controllers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plissemesh/production-backend/api/responses"
	"github.com/plissemesh/production-backend/internal/shopify"
	"github.com/plissemesh/production-backend/pkg/enums"
	pkgerrors "github.com/plissemesh/production-backend/pkg/errors"
	"github.com/plissemesh/production-backend/pkg/logger"
)

// Shopify never retries faster for bigger payloads; 1 MiB covers any real order.
const maxWebhookBody = 1 << 20

// ShopifyWebhook verifies and ingests order webhooks from one storefront.
func ShopifyWebhook(svc shopify.WebhookService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}

		store, err := enums.ParseStoreKey(chi.URLParam(r, "storeKey"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown store"))
			return
		}
		ctx := logg.WithStoreKey(r.Context(), store.String())

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "failed to read webhook body"))
			return
		}

		signature := r.Header.Get("X-Shopify-Hmac-Sha256")
		if err := svc.VerifySignature(store, body, signature); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		topic := r.Header.Get("X-Shopify-Topic")
		if err := svc.HandleOrderEvent(ctx, store, topic, body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "accepted"})
	}
}
