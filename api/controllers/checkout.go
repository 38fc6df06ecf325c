package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/PAUpau912/maki-kape-pos-system/api/middleware"
	"github.com/PAUpau912/maki-kape-pos-system/api/responses"
	"github.com/PAUpau912/maki-kape-pos-system/api/validators"
	"github.com/PAUpau912/maki-kape-pos-system/internal/checkout"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

// OpenCheckout moves the session into payment capture.
func OpenCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
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
		if err := sess.BeginCheckout(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

// CancelCheckout abandons payment capture without touching the cart.
func CancelCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
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
		if err := sess.Cancel(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

type digitRequest struct {
	Digit *int `json:"digit" validate:"required,gte=0,lte=9"`
}

// PressDigit appends one digit to the cash amount entry.
func PressDigit(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload digitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.PressDigit(*payload.Digit); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

type quickAmountRequest struct {
	Amount int64 `json:"amount" validate:"required,min=1"`
}

// exactAmountRequest allows zero; the session floors nothing below it.
type exactAmountRequest struct {
	Amount *int64 `json:"amount" validate:"required,gte=0"`
}

// QuickAmount sets the amount to one of the preset cash denominations.
func QuickAmount(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload quickAmountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.QuickAmount(payload.Amount); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

// ExactAmount overrides the pad with a direct numeric entry.
func ExactAmount(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload exactAmountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := sess.SetExactAmount(*payload.Amount); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

// ClearAmount resets the cash amount entry.
func ClearAmount(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := sess.ClearAmount(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSessionResponse(sess.View()))
	}
}

type settlementResponse struct {
	SaleID       string `json:"sale_id"`
	TotalAmount  string `json:"total_amount"`
	CashReceived string `json:"cash_received"`
	ChangeAmount string `json:"change_amount"`
}

// ConfirmCheckout settles the sale and resets the session on success.
func ConfirmCheckout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		result, err := svc.Confirm(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, settlementResponse{
			SaleID:       result.SaleID.String(),
			TotalAmount:  result.TotalAmount.StringFixed(2),
			CashReceived: result.CashReceived.StringFixed(2),
			ChangeAmount: result.ChangeAmount.StringFixed(2),
		})
	}
}
