package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

// DashboardMetrics is the aggregated view served to the sales dashboard.
type DashboardMetrics struct {
	TotalSalesAmount decimal.Decimal `json:"total_sales_amount"`
	TotalItemsSold   int             `json:"total_items_sold"`
	TopSeller        string          `json:"top_seller"`
	MonthlySeries    []SeriesPoint   `json:"monthly_series"`
	WeeklySeries     []SeriesPoint   `json:"weekly_series"`
	RecentItems      []SaleItemView  `json:"recent_items"`
}

// Service computes dashboard metrics from sales history.
type Service interface {
	DashboardMetrics(ctx context.Context) (*DashboardMetrics, error)
	Recent(ctx context.Context, limit int) ([]SaleItemView, error)
}

type service struct {
	repo Repository
	now  func() time.Time
	logg *logger.Logger
}

// NewService builds the sales dashboard service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New(errors.CodeInternal, "sales repository is required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeInternal, "logger is required")
	}
	return &service{repo: repo, now: time.Now, logg: logg}, nil
}

// DashboardMetrics loads history and aggregates it. Fetch failures degrade to
// zeroed metrics rather than failing the dashboard: the register must stay
// usable even when history reads are unhealthy.
func (s *service) DashboardMetrics(ctx context.Context) (*DashboardMetrics, error) {
	now := s.now()

	allSales, err := s.repo.ListSales(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to load sales history, serving degraded dashboard")
		allSales = nil
	}
	items, err := s.repo.ListSaleItemViews(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to load sale items, serving degraded dashboard")
		items = nil
	}
	recent, err := s.repo.RecentItems(ctx, 20)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to load recent sale items")
		recent = nil
	}

	return &DashboardMetrics{
		TotalSalesAmount: TotalSalesAmount(allSales),
		TotalItemsSold:   TotalItemsSold(items),
		TopSeller:        TopSellerThisMonth(items, now),
		MonthlySeries:    MonthlySeries(allSales),
		WeeklySeries:     WeeklySeries(allSales, now),
		RecentItems:      recent,
	}, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]SaleItemView, error) {
	views, err := s.repo.RecentItems(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to load recent sale items")
	}
	return views, nil
}
