package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/PAUpau912/maki-kape-pos-system/api/middleware"
	"github.com/PAUpau912/maki-kape-pos-system/api/responses"
	"github.com/PAUpau912/maki-kape-pos-system/api/validators"
	"github.com/PAUpau912/maki-kape-pos-system/internal/catalog"
	"github.com/PAUpau912/maki-kape-pos-system/internal/checkout"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

type cartLineResponse struct {
	Product  productResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal string          `json:"subtotal"`
}

type sessionResponse struct {
	Phase       string             `json:"phase"`
	Lines       []cartLineResponse `json:"lines"`
	TotalAmount string             `json:"total_amount"`
	TotalItems  int                `json:"total_items"`
	AmountGiven *int64             `json:"amount_given,omitempty"`
	ChangeDue   *string            `json:"change_due,omitempty"`
}

func toSessionResponse(view checkout.View) sessionResponse {
	lines := make([]cartLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, cartLineResponse{
			Product:  toProductResponse(line.Product),
			Quantity: line.Quantity,
			Subtotal: line.Subtotal().StringFixed(2),
		})
	}
	resp := sessionResponse{
		Phase:       string(view.Phase),
		Lines:       lines,
		TotalAmount: view.TotalAmount.StringFixed(2),
		TotalItems:  view.TotalItems,
		AmountGiven: view.AmountGiven,
	}
	if view.ChangeDue != nil {
		change := view.ChangeDue.StringFixed(2)
		resp.ChangeDue = &change
	}
	return resp
}

func sessionForRequest(r *http.Request, svc checkout.Service) (*checkout.Session, uuid.UUID, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		return nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return svc.Session(userID), userID, nil
}

// GetCart serves the operator's current session view.
func GetCart(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sess, _, err := sessionForRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
}

// AddCartItem loads the product and adds it to the operator's cart.
func AddCartItem(svc checkout.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sess, _, err := sessionForRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.Product(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.AddProduct(*product); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// SetCartItemQuantity updates a line quantity, clamped to available stock.
func SetCartItemQuantity(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sess, _, err := sessionForRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.SetQuantity(productID, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

// RemoveCartItem drops a line from the cart.
func RemoveCartItem(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sess, _, err := sessionForRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := sess.RemoveItem(productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

// OpenCart shows the cart panel.
func OpenCart(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sess, _, err := sessionForRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.OpenCart()
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

// CloseCart hides the cart panel, keeping its contents.
func CloseCart(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sess, _, err := sessionForRequest(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sess.CloseCart()
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}
