package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/enums"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
)

// Service exposes the catalog snapshot and product maintenance.
type Service interface {
	Snapshot(ctx context.Context, filter ListFilter) (*Snapshot, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Product(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error)
}

// Snapshot is a read-only view of the sellable catalog at fetch time.
type Snapshot struct {
	Products   []models.Product
	Categories []models.Category
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Price  *decimal.Decimal
	Stock  *int
	Status *string
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Snapshot(ctx context.Context, filter ListFilter) (*Snapshot, error) {
	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Products: products, Categories: categories}, nil
}

func (s *service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) Product(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.FindProductByID(ctx, id)
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
		}
		product.Stock = *input.Stock
	}
	if input.Status != nil {
		status, ok := enums.ParseProductStatus(*input.Status)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be available or unavailable")
		}
		product.Status = status
	}

	return s.repo.UpdateProduct(ctx, product)
}
