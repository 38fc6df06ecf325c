package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/config"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/enums"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
)

func newRepoFixture(t *testing.T) Repository {
	t.Helper()

	cfg := config.DBConfig{
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
	client, err := db.New(context.Background(), cfg, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&models.Category{}, &models.Product{}))

	seed := []any{
		&models.Category{ID: 1, Name: "Coffee"},
		&models.Category{ID: 2, Name: "Food"},
		&models.Product{ID: 1, Name: "Americano", CategoryID: 1,
			Price: decimal.RequireFromString("120.00"), Stock: 10,
			Status: enums.ProductStatusAvailable},
		&models.Product{ID: 2, Name: "Iced Latte", CategoryID: 1,
			Price: decimal.RequireFromString("150.00"), Stock: 0,
			Status: enums.ProductStatusAvailable},
		&models.Product{ID: 3, Name: "Spam Musubi", CategoryID: 2,
			Price: decimal.RequireFromString("95.50"), Stock: 5,
			Status: enums.ProductStatusUnavailable},
	}
	for _, row := range seed {
		require.NoError(t, client.DB().Create(row).Error)
	}
	return NewRepository(client.DB())
}

func TestListProductsFilters(t *testing.T) {
	repo := newRepoFixture(t)
	ctx := context.Background()

	t.Run("all", func(t *testing.T) {
		products, err := repo.ListProducts(ctx, ListFilter{})
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})

	t.Run("sellable only", func(t *testing.T) {
		products, err := repo.ListProducts(ctx, ListFilter{SellableOnly: true})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Americano", products[0].Name)
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		products, err := repo.ListProducts(ctx, ListFilter{Query: "aMeRiC"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Americano", products[0].Name)
	})

	t.Run("by category", func(t *testing.T) {
		food := int64(2)
		products, err := repo.ListProducts(ctx, ListFilter{CategoryID: &food})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Spam Musubi", products[0].Name)
	})
}

func TestFindProductByID(t *testing.T) {
	repo := newRepoFixture(t)
	ctx := context.Background()

	product, err := repo.FindProductByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Americano", product.Name)

	_, err = repo.FindProductByID(ctx, 404)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateProductStock(t *testing.T) {
	repo := newRepoFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateProductStock(ctx, 1, 7))
	product, err := repo.FindProductByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, product.Stock)

	err = repo.UpdateProductStock(ctx, 404, 1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListCategories(t *testing.T) {
	repo := newRepoFixture(t)

	categories, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}
