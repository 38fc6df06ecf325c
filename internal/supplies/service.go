package supplies

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/enums"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
)

// CreateInput is a new supply inventory row.
type CreateInput struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock" validate:"gte=0"`
	MinStock int             `json:"min_stock" validate:"gte=0"`
	Unit     string          `json:"unit"`
}

// UpdateInput carries partial edits to a supply row. Nil fields are left
// unchanged.
type UpdateInput struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"`
	MinStock *int             `json:"min_stock"`
	Unit     *string          `json:"unit"`
}

// Service manages the back-of-house supply inventory.
type Service interface {
	List(ctx context.Context, query string) ([]models.SupplyItem, error)
	Create(ctx context.Context, input CreateInput) (*models.SupplyItem, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*models.SupplyItem, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds the supplies service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New(errors.CodeInternal, "supplies repository is required")
	}
	return &service{repo: repo}, nil
}

// List returns supply rows with their status freshly derived. The stored
// status column is display cache only.
func (s *service) List(ctx context.Context, query string) ([]models.SupplyItem, error) {
	items, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to list supplies")
	}
	for i := range items {
		items[i].Status = enums.SupplyStatusFor(items[i].Stock, items[i].MinStock)
	}
	return items, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.SupplyItem, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" || category == "" {
		return nil, errors.New(errors.CodeValidation, "name and category are required")
	}
	if input.Price.IsNegative() {
		return nil, errors.New(errors.CodeValidation, "price must not be negative")
	}
	if input.Stock < 0 || input.MinStock < 0 {
		return nil, errors.New(errors.CodeValidation, "stock counts must not be negative")
	}

	item := &models.SupplyItem{
		Name:     name,
		Category: category,
		Price:    input.Price,
		Stock:    input.Stock,
		MinStock: input.MinStock,
		Unit:     strings.TrimSpace(input.Unit),
		Status:   enums.SupplyStatusFor(input.Stock, input.MinStock),
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to create supply item")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*models.SupplyItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errors.New(errors.CodeValidation, "name must not be empty")
		}
		item.Name = name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, errors.New(errors.CodeValidation, "category must not be empty")
		}
		item.Category = category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, errors.New(errors.CodeValidation, "price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, errors.New(errors.CodeValidation, "stock must not be negative")
		}
		item.Stock = *input.Stock
	}
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return nil, errors.New(errors.CodeValidation, "min stock must not be negative")
		}
		item.MinStock = *input.MinStock
	}
	if input.Unit != nil {
		item.Unit = strings.TrimSpace(*input.Unit)
	}

	item.Status = enums.SupplyStatusFor(item.Stock, item.MinStock)

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		if errors.As(err) != nil {
			return nil, err
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "failed to update supply item")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.As(err) != nil {
			return err
		}
		return errors.Wrap(errors.CodeDependency, err, "failed to delete supply item")
	}
	return nil
}
