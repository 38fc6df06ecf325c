package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
)

// ListFilter narrows the product listing.
type ListFilter struct {
	Query        string
	CategoryID   *int64
	SellableOnly bool
}

// Repository exposes catalog persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context, filter ListFilter) ([]models.Product, error)
	FindProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProductStock(ctx context.Context, id int64, stock int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("category_id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) ListProducts(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		query = query.Where("LOWER(product_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SellableOnly {
		query = query.Where("status = ? AND stock > 0", "available")
	}

	var products []models.Product
	if err := query.Order("product_id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) FindProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, "product_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) UpdateProductStock(ctx context.Context, id int64, stock int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("product_id = ?", id).
		Update("stock", stock)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
