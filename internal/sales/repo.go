package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
)

// SaleItemView is a sale item joined with its product name and the parent
// sale's date.
type SaleItemView struct {
	SaleItemID  int64           `gorm:"column:sales_item_id"`
	SaleID      uuid.UUID       `gorm:"column:sale_id"`
	ProductID   int64           `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name"`
	Quantity    int             `gorm:"column:quantity"`
	UnitPrice   decimal.Decimal `gorm:"column:price"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal"`
	SaleDate    time.Time       `gorm:"column:sale_date"`
}

// Repository persists sales and reads history for the dashboard.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	CreateSaleItem(ctx context.Context, item *models.SaleItem) error
	ListSales(ctx context.Context) ([]models.Sale, error)
	ListSaleItemViews(ctx context.Context) ([]SaleItemView, error)
	RecentItems(ctx context.Context, limit int) ([]SaleItemView, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSale(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

func (r *repository) CreateSaleItem(ctx context.Context, item *models.SaleItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).Order("sale_date").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

const saleItemViewQuery = `
SELECT si.sales_item_id,
       si.sale_id,
       si.product_id,
       COALESCE(p.product_name, 'Unknown') AS product_name,
       si.quantity,
       si.price,
       si.subtotal,
       s.sale_date
FROM sales_items si
JOIN sales s ON s.sale_id = si.sale_id
LEFT JOIN products p ON p.product_id = si.product_id
`

func (r *repository) ListSaleItemViews(ctx context.Context) ([]SaleItemView, error) {
	var views []SaleItemView
	err := r.db.WithContext(ctx).
		Raw(saleItemViewQuery + "ORDER BY s.sale_date, si.sales_item_id").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *repository) RecentItems(ctx context.Context, limit int) ([]SaleItemView, error) {
	if limit <= 0 {
		limit = 20
	}
	var views []SaleItemView
	err := r.db.WithContext(ctx).
		Raw(saleItemViewQuery+"ORDER BY s.sale_date DESC, si.sales_item_id DESC LIMIT ?", limit).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
