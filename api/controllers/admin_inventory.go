package controllers

import (
	"net/http"

	"github.com/iceonwheels/storefront-backend/api/responses"
	"github.com/iceonwheels/storefront-backend/api/validators"
	"github.com/iceonwheels/storefront-backend/internal/inventory"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
	"github.com/iceonwheels/storefront-backend/pkg/logger"
)

func AdminInventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}
		if r.URL.Query().Get("low_stock") == "true" {
			rows, err := svc.ListLowStock(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, rows)
			return
		}
		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminInventoryUpsert(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body inventory.SetStockInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.SetStock(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

type inventoryAdjustRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// AdminInventoryAdjust restocks (positive quantity) or deducts
// (negative quantity) a menu item's stock.
func AdminInventoryAdjust(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuItemID, err := parseUUIDParam(r, "menuItemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body inventoryAdjustRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if body.Quantity >= 0 {
			err = svc.Restock(r.Context(), menuItemID, body.Quantity)
		} else {
			err = svc.Deduct(r.Context(), menuItemID, -body.Quantity)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "adjusted"})
	}
}
