package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAUpau912/maki-kape-pos-system/internal/checkout"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
)

func cartWithItem(t *testing.T, svc *stubCheckoutService, userID uuid.UUID) {
	t.Helper()
	product, err := americanoCatalog().Product(t.Context(), 1)
	require.NoError(t, err)
	require.NoError(t, svc.Session(userID).AddProduct(*product))
}

func TestOpenCheckout(t *testing.T) {
	t.Parallel()

	svc := newStubCheckoutService()
	userID := uuid.New()
	cartWithItem(t, svc, userID)

	handler := OpenCheckout(svc, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/open", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phase":"payment_capture"`)
}

func TestOpenCheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	handler := OpenCheckout(newStubCheckoutService(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/open", "", uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAmountEntryFlow(t *testing.T) {
	t.Parallel()

	svc := newStubCheckoutService()
	userID := uuid.New()
	cartWithItem(t, svc, userID)
	require.NoError(t, svc.Session(userID).BeginCheckout())

	digit := PressDigit(svc, nil)
	for _, body := range []string{`{"digit":5}`, `{"digit":0}`, `{"digit":0}`} {
		rec := httptest.NewRecorder()
		digit.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/amount/digit", body, userID))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	view := svc.Session(userID).View()
	require.NotNil(t, view.AmountGiven)
	assert.Equal(t, int64(500), *view.AmountGiven)

	rec := httptest.NewRecorder()
	QuickAmount(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/amount/quick", `{"amount":1000}`, userID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1000), *svc.Session(userID).View().AmountGiven)

	rec = httptest.NewRecorder()
	ClearAmount(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/amount/clear", "", userID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.Session(userID).View().AmountGiven)

	rec = httptest.NewRecorder()
	ExactAmount(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/amount/exact", `{"amount":350}`, userID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(350), *svc.Session(userID).View().AmountGiven)
}

func TestExactAmountAcceptsZero(t *testing.T) {
	t.Parallel()

	svc := newStubCheckoutService()
	userID := uuid.New()
	cartWithItem(t, svc, userID)
	require.NoError(t, svc.Session(userID).BeginCheckout())

	rec := httptest.NewRecorder()
	ExactAmount(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/amount/exact", `{"amount":0}`, userID))
	require.Equal(t, http.StatusOK, rec.Code)

	view := svc.Session(userID).View()
	require.NotNil(t, view.AmountGiven)
	assert.Equal(t, int64(0), *view.AmountGiven)

	rec = httptest.NewRecorder()
	ExactAmount(svc, nil).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/amount/exact", `{}`, userID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPressDigitOutsideCheckout(t *testing.T) {
	t.Parallel()

	handler := PressDigit(newStubCheckoutService(), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/amount/digit", `{"digit":5}`, uuid.New()))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestConfirmCheckout(t *testing.T) {
	t.Parallel()

	svc := newStubCheckoutService()
	svc.result = &checkout.SettlementResult{
		SaleID:       uuid.New(),
		TotalAmount:  decimal.RequireFromString("335.50"),
		CashReceived: decimal.NewFromInt(500),
		ChangeAmount: decimal.RequireFromString("164.50"),
	}

	handler := ConfirmCheckout(svc, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/confirm", "", uuid.New()))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_amount":"335.50"`)
	assert.Contains(t, rec.Body.String(), `"change_amount":"164.50"`)
}

func TestConfirmCheckoutConflict(t *testing.T) {
	t.Parallel()

	svc := newStubCheckoutService()
	svc.err = pkgerrors.New(pkgerrors.CodeStateConflict, "settlement already in progress")

	handler := ConfirmCheckout(svc, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/confirm", "", uuid.New()))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "STATE_CONFLICT")
}

func TestCancelCheckout(t *testing.T) {
	t.Parallel()

	svc := newStubCheckoutService()
	userID := uuid.New()
	cartWithItem(t, svc, userID)
	require.NoError(t, svc.Session(userID).BeginCheckout())

	handler := CancelCheckout(svc, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout/cancel", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phase":"cart_open"`)
	assert.Contains(t, rec.Body.String(), `"total_items":1`)
}
