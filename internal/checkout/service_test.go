package checkout

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAUpau912/maki-kape-pos-system/internal/catalog"
	"github.com/PAUpau912/maki-kape-pos-system/internal/sales"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/config"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/enums"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

func newTestUserID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "checkout-test", Output: io.Discard})
}

type settlementFixture struct {
	svc    Service
	client *db.Client
}

func newSettlementFixture(t *testing.T, products ...models.Product) *settlementFixture {
	t.Helper()

	cfg := config.DBConfig{
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
	client, err := db.New(context.Background(), cfg, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
	))
	for i := range products {
		require.NoError(t, client.DB().Create(&products[i]).Error)
	}

	svc, err := NewService(
		client,
		catalog.NewRepository(client.DB()),
		sales.NewRepository(client.DB()),
		nil,
		testLogger(),
	)
	require.NoError(t, err)

	return &settlementFixture{svc: svc, client: client}
}

func (f *settlementFixture) productStock(t *testing.T, id int64) int {
	t.Helper()
	var product models.Product
	require.NoError(t, f.client.DB().First(&product, id).Error)
	return product.Stock
}

func (f *settlementFixture) count(t *testing.T, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.client.DB().Table(table).Count(&n).Error)
	return n
}

func TestNewServiceValidatesDeps(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, nil, nil, nil, nil)
	require.Error(t, err)
}

func TestConfirmSettlesAtomically(t *testing.T) {
	americano := models.Product{
		ID: 1, Name: "Americano", CategoryID: 1,
		Price: decimal.RequireFromString("120.00"), Stock: 10,
		Status: enums.ProductStatusAvailable,
	}
	musubi := models.Product{
		ID: 2, Name: "Spam Musubi", CategoryID: 1,
		Price: decimal.RequireFromString("95.50"), Stock: 5,
		Status: enums.ProductStatusAvailable,
	}
	fixture := newSettlementFixture(t, americano, musubi)
	userID := newTestUserID(t)

	sess := fixture.svc.Session(userID)
	require.NoError(t, sess.AddProduct(americano))
	require.NoError(t, sess.AddProduct(americano))
	require.NoError(t, sess.AddProduct(musubi))
	require.NoError(t, sess.BeginCheckout())
	require.NoError(t, sess.QuickAmount(500))

	result, err := fixture.svc.Confirm(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, result)

	// 2x120 + 95.50 = 335.50, change 164.50
	assert.Equal(t, "335.50", result.TotalAmount.StringFixed(2))
	assert.Equal(t, "500.00", result.CashReceived.StringFixed(2))
	assert.Equal(t, "164.50", result.ChangeAmount.StringFixed(2))
	assert.NotEqual(t, uuid.Nil, result.SaleID)

	assert.Equal(t, int64(1), fixture.count(t, "sales"))
	assert.Equal(t, int64(2), fixture.count(t, "sales_items"))
	assert.Equal(t, 8, fixture.productStock(t, 1))
	assert.Equal(t, 4, fixture.productStock(t, 2))

	view := sess.View()
	assert.Equal(t, PhaseIdle, view.Phase)
	assert.Empty(t, view.Lines)
}

func TestConfirmRollsBackWhenStockRanOut(t *testing.T) {
	americano := models.Product{
		ID: 1, Name: "Americano", CategoryID: 1,
		Price: decimal.RequireFromString("120.00"), Stock: 10,
		Status: enums.ProductStatusAvailable,
	}
	musubi := models.Product{
		ID: 2, Name: "Spam Musubi", CategoryID: 1,
		Price: decimal.RequireFromString("95.50"), Stock: 5,
		Status: enums.ProductStatusAvailable,
	}
	fixture := newSettlementFixture(t, americano, musubi)
	userID := newTestUserID(t)

	sess := fixture.svc.Session(userID)
	require.NoError(t, sess.AddProduct(americano))
	require.NoError(t, sess.AddProduct(musubi))
	require.NoError(t, sess.SetQuantity(2, 3))
	require.NoError(t, sess.BeginCheckout())
	require.NoError(t, sess.QuickAmount(1000))

	// The shelf empties behind the cart's back.
	require.NoError(t, fixture.client.DB().
		Model(&models.Product{}).Where("product_id = ?", 2).
		Update("stock", 1).Error)

	_, err := fixture.svc.Confirm(context.Background(), userID)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
	assert.Contains(t, coded.Message(), "Spam Musubi")

	// Nothing from the attempt may persist: no header, no items, and the
	// first line's stock decrement rolled back with the rest.
	assert.Equal(t, int64(0), fixture.count(t, "sales"))
	assert.Equal(t, int64(0), fixture.count(t, "sales_items"))
	assert.Equal(t, 10, fixture.productStock(t, 1))

	// The session stays in payment capture so the operator can fix the
	// cart and retry.
	view := sess.View()
	assert.Equal(t, PhasePaymentCapture, view.Phase)
	assert.Len(t, view.Lines, 2)

	require.NoError(t, sess.SetQuantity(2, 1))
	result, err := fixture.svc.Confirm(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "215.50", result.TotalAmount.StringFixed(2))
}

func TestConfirmRejectsWhileSettlementInFlight(t *testing.T) {
	americano := models.Product{
		ID: 1, Name: "Americano", CategoryID: 1,
		Price: decimal.RequireFromString("120.00"), Stock: 10,
		Status: enums.ProductStatusAvailable,
	}
	fixture := newSettlementFixture(t, americano)
	userID := newTestUserID(t)

	sess := fixture.svc.Session(userID)
	require.NoError(t, sess.AddProduct(americano))
	require.NoError(t, sess.BeginCheckout())
	require.NoError(t, sess.QuickAmount(500))

	_, err := sess.beginSettlement()
	require.NoError(t, err)

	_, err = fixture.svc.Confirm(context.Background(), userID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())

	sess.endSettlement(false)
	_, err = fixture.svc.Confirm(context.Background(), userID)
	require.NoError(t, err)
}

func TestConfirmWithoutCheckoutFails(t *testing.T) {
	fixture := newSettlementFixture(t)
	userID := newTestUserID(t)

	_, err := fixture.svc.Confirm(context.Background(), userID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
	assert.Equal(t, int64(0), fixture.count(t, "sales"))
}
