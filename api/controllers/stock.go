package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verto-labs/verto-inventory/api/middleware"
	"github.com/verto-labs/verto-inventory/api/responses"
	"github.com/verto-labs/verto-inventory/api/validators"
	productsvc "github.com/verto-labs/verto-inventory/internal/products"
	pkgerrors "github.com/verto-labs/verto-inventory/pkg/errors"
	"github.com/verto-labs/verto-inventory/pkg/logger"
	"github.com/verto-labs/verto-inventory/pkg/pagination"
)

// AddStock raises a product's stock by the requested magnitude.
func AddStock(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return stockOperation(svc, logg, "Stock added successfully", productsvc.Service.IncreaseStock)
}

// RemoveStock lowers a product's stock by the requested magnitude.
func RemoveStock(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return stockOperation(svc, logg, "Stock removed successfully", productsvc.Service.DecreaseStock)
}

func stockOperation(
	svc productsvc.Service,
	logg *logger.Logger,
	successMessage string,
	op func(productsvc.Service, context.Context, string, productsvc.StockOperationRequest) (*productsvc.StockResult, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		actor := middleware.UsernameFromContext(r.Context())
		if actor == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		var payload productsvc.StockOperationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := op(svc, r.Context(), actor, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, successMessage, result)
	}
}

// ListStockLogs returns one page of the audit trail for a product.
func ListStockLogs(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		params := pagination.Normalize(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
		result, err := svc.StockLogs(r.Context(), chi.URLParam(r, "productId"), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, "Stock logs fetched successfully", result)
	}
}
