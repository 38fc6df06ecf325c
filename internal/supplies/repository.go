package supplies

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
)

// Repository persists supply inventory rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.SupplyItem) (*models.SupplyItem, error)
	Update(ctx context.Context, item *models.SupplyItem) (*models.SupplyItem, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.SupplyItem, error)
	List(ctx context.Context, query string) ([]models.SupplyItem, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a supplies repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, item *models.SupplyItem) (*models.SupplyItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) Update(ctx context.Context, item *models.SupplyItem) (*models.SupplyItem, error) {
	result := r.db.WithContext(ctx).Model(&models.SupplyItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"product_name": item.Name,
			"category":     item.Category,
			"price":        item.Price,
			"stock":        item.Stock,
			"min_stock":    item.MinStock,
			"unit":         item.Unit,
			"status":       item.Status,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supply item not found")
	}
	return item, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.SupplyItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "supply item not found")
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.SupplyItem, error) {
	var item models.SupplyItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supply item not found")
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) List(ctx context.Context, query string) ([]models.SupplyItem, error) {
	q := r.db.WithContext(ctx).Order("product_name")
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		pattern := "%" + strings.ToLower(trimmed) + "%"
		q = q.Where("LOWER(product_name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}
	var items []models.SupplyItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
