package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/api/responses"
	"github.com/PAUpau912/maki-kape-pos-system/api/validators"
	"github.com/PAUpau912/maki-kape-pos-system/internal/catalog"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

type productResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	CategoryID int64   `json:"category_id"`
	Price      string  `json:"price"`
	ImageURL   *string `json:"image_url,omitempty"`
	Stock      int     `json:"stock"`
	Status     string  `json:"status"`
	Sellable   bool    `json:"sellable"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      p.Price.StringFixed(2),
		ImageURL:   p.ImageURL,
		Stock:      p.Stock,
		Status:     p.Status.String(),
		Sellable:   p.Sellable(),
	}
}

func toCategoryResponses(categories []models.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID, Name: c.Name})
	}
	return out
}

// ListProducts serves the storefront catalog with optional search and
// category filters.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categoryID, err := validators.ParseQueryInt64(r, "category_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ListFilter{
			Query:        validators.SanitizeString(r.URL.Query().Get("q"), 120),
			CategoryID:   categoryID,
			SellableOnly: r.URL.Query().Get("sellable") == "true",
		}

		snap, err := svc.Snapshot(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products := make([]productResponse, 0, len(snap.Products))
		for _, p := range snap.Products {
			products = append(products, toProductResponse(p))
		}
		responses.WriteSuccess(w, map[string]any{
			"products":   products,
			"categories": toCategoryResponses(snap.Categories),
		})
	}
}

// ListCategories serves the category filter chips.
func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCategoryResponses(categories))
	}
}

type updateProductRequest struct {
	Price  *string `json:"price,omitempty"`
	Stock  *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=available unavailable"`
}

// UpdateProduct applies price, stock, and status edits to a product.
func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			Stock:  payload.Stock,
			Status: payload.Status,
		}
		if payload.Price != nil {
			price, err := decimal.NewFromString(*payload.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
				return
			}
			input.Price = &price
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductResponse(*product))
	}
}
