package sales

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

type stubRepo struct {
	sales     []models.Sale
	items     []SaleItemView
	salesErr  error
	itemsErr  error
	recentErr error
}

func (s *stubRepo) WithTx(*gorm.DB) Repository { return s }

func (s *stubRepo) CreateSale(context.Context, *models.Sale) (*models.Sale, error) {
	return nil, errors.New("not implemented")
}

func (s *stubRepo) CreateSaleItem(context.Context, *models.SaleItem) error {
	return errors.New("not implemented")
}

func (s *stubRepo) ListSales(context.Context) ([]models.Sale, error) {
	return s.sales, s.salesErr
}

func (s *stubRepo) ListSaleItemViews(context.Context) ([]SaleItemView, error) {
	return s.items, s.itemsErr
}

func (s *stubRepo) RecentItems(context.Context, int) ([]SaleItemView, error) {
	return s.items, s.recentErr
}

func newTestService(t *testing.T, repo Repository) *service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "sales-test", Output: io.Discard}))
	require.NoError(t, err)
	return svc.(*service)
}

func TestNewServiceValidatesDeps(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, nil)
	require.Error(t, err)
}

func TestDashboardMetrics(t *testing.T) {
	t.Parallel()

	jan5 := time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)
	jan20 := time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC)

	repo := &stubRepo{
		sales: []models.Sale{
			{TotalAmount: decimal.RequireFromString("100.00"), SaleDate: jan5},
			{TotalAmount: decimal.RequireFromString("50.00"), SaleDate: jan20},
		},
		items: []SaleItemView{
			{ProductName: "Latte", Quantity: 3, SaleDate: jan5},
			{ProductName: "Mocha", Quantity: 5, SaleDate: jan20},
		},
	}
	svc := newTestService(t, repo)
	svc.now = func() time.Time { return time.Date(2024, time.January, 25, 0, 0, 0, 0, time.UTC) }

	metrics, err := svc.DashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "150.00", metrics.TotalSalesAmount.StringFixed(2))
	assert.Equal(t, 8, metrics.TotalItemsSold)
	assert.Equal(t, "Mocha", metrics.TopSeller)
	require.Len(t, metrics.MonthlySeries, 1)
	assert.Equal(t, "Jan 2024", metrics.MonthlySeries[0].Label)
	assert.Len(t, metrics.WeeklySeries, 5)
	assert.Len(t, metrics.RecentItems, 2)
}

func TestDashboardMetricsDegradesOnFetchFailure(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{
		salesErr:  errors.New("connection refused"),
		itemsErr:  errors.New("connection refused"),
		recentErr: errors.New("connection refused"),
	}
	svc := newTestService(t, repo)

	metrics, err := svc.DashboardMetrics(context.Background())
	require.NoError(t, err)

	assert.True(t, metrics.TotalSalesAmount.IsZero())
	assert.Equal(t, 0, metrics.TotalItemsSold)
	assert.Equal(t, "N/A", metrics.TopSeller)
	assert.Empty(t, metrics.MonthlySeries)
	assert.Len(t, metrics.WeeklySeries, 5)
	assert.Empty(t, metrics.RecentItems)
}

func TestRecentWrapsRepoError(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{recentErr: errors.New("timeout")})

	_, err := svc.Recent(context.Background(), 10)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}
