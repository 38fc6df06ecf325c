package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/api/responses"
	"github.com/PAUpau912/maki-kape-pos-system/api/validators"
	"github.com/PAUpau912/maki-kape-pos-system/internal/supplies"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

type supplyResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	Unit     string `json:"unit,omitempty"`
	Status   string `json:"status"`
}

func toSupplyResponse(item models.SupplyItem) supplyResponse {
	return supplyResponse{
		ID:       item.ID,
		Name:     item.Name,
		Category: item.Category,
		Price:    item.Price.StringFixed(2),
		Stock:    item.Stock,
		MinStock: item.MinStock,
		Unit:     item.Unit,
		Status:   item.Status.String(),
	}
}

// ListSupplies serves the supply inventory with optional search.
func ListSupplies(svc supplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplies service unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), 120)
		items, err := svc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]supplyResponse, 0, len(items))
		for _, item := range items {
			out = append(out, toSupplyResponse(item))
		}
		responses.WriteSuccess(w, out)
	}
}

type createSupplyRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    string  `json:"price" validate:"required"`
	Stock    int     `json:"stock" validate:"gte=0"`
	MinStock int     `json:"min_stock" validate:"gte=0"`
	Unit     *string `json:"unit,omitempty"`
}

// CreateSupply adds a supply inventory row.
func CreateSupply(svc supplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplies service unavailable"))
			return
		}

		var payload createSupplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		input := supplies.CreateInput{
			Name:     payload.Name,
			Category: payload.Category,
			Price:    price,
			Stock:    payload.Stock,
			MinStock: payload.MinStock,
		}
		if payload.Unit != nil {
			input.Unit = *payload.Unit
		}

		item, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toSupplyResponse(*item))
	}
}

type updateSupplyRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Price    *string `json:"price,omitempty"`
	Stock    *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	MinStock *int    `json:"min_stock,omitempty" validate:"omitempty,gte=0"`
	Unit     *string `json:"unit,omitempty"`
}

// UpdateSupply applies partial edits to a supply row.
func UpdateSupply(svc supplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplies service unavailable"))
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supply id"))
			return
		}

		var payload updateSupplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := supplies.UpdateInput{
			Name:     payload.Name,
			Category: payload.Category,
			Stock:    payload.Stock,
			MinStock: payload.MinStock,
			Unit:     payload.Unit,
		}
		if payload.Price != nil {
			price, err := decimal.NewFromString(*payload.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			input.Price = &price
		}

		item, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSupplyResponse(*item))
	}
}

// DeleteSupply removes a supply row.
func DeleteSupply(svc supplies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplies service unavailable"))
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supply id"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": id})
	}
}
