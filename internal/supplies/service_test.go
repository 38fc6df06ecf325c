package supplies

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

func newServiceFixture(t *testing.T) Service {
	t.Helper()

	cfg := config.DBConfig{
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
	client, err := db.New(context.Background(), cfg, true, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.DB().AutoMigrate(&models.SupplyItem{}))

	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	return svc
}

func TestCreateDerivesStatus(t *testing.T) {
	svc := newServiceFixture(t)
	ctx := context.Background()

	low, err := svc.Create(ctx, CreateInput{
		Name: "Oat Milk", Category: "Dairy",
		Price: decimal.RequireFromString("85.00"),
		Stock: 2, MinStock: 5, Unit: "carton",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SupplyStatusLowStock, low.Status)

	ok, err := svc.Create(ctx, CreateInput{
		Name: "Espresso Beans", Category: "Coffee",
		Price: decimal.RequireFromString("450.00"),
		Stock: 12, MinStock: 3, Unit: "kg",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.SupplyStatusInStock, ok.Status)
}

func TestCreateValidation(t *testing.T) {
	svc := newServiceFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateInput
	}{
		{"missing name", CreateInput{Category: "Coffee"}},
		{"missing category", CreateInput{Name: "Beans"}},
		{"blank name", CreateInput{Name: "   ", Category: "Coffee"}},
		{"negative price", CreateInput{Name: "Beans", Category: "Coffee", Price: decimal.NewFromInt(-1)}},
		{"negative stock", CreateInput{Name: "Beans", Category: "Coffee", Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestUpdateRecomputesStatus(t *testing.T) {
	svc := newServiceFixture(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateInput{
		Name: "Cups 12oz", Category: "Packaging",
		Price: decimal.RequireFromString("2.50"),
		Stock: 100, MinStock: 20, Unit: "pc",
	})
	require.NoError(t, err)
	require.Equal(t, enums.SupplyStatusInStock, item.Status)

	stock := 15
	updated, err := svc.Update(ctx, item.ID, UpdateInput{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, enums.SupplyStatusLowStock, updated.Status)
	assert.Equal(t, 15, updated.Stock)

	minStock := 10
	updated, err = svc.Update(ctx, item.ID, UpdateInput{MinStock: &minStock})
	require.NoError(t, err)
	assert.Equal(t, enums.SupplyStatusInStock, updated.Status)
}

func TestUpdateMissingItem(t *testing.T) {
	svc := newServiceFixture(t)

	name := "Ghost"
	_, err := svc.Update(context.Background(), 404, UpdateInput{Name: &name})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestListSearchesAndRefreshesStatus(t *testing.T) {
	svc := newServiceFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{
		Name: "Arabica Beans", Category: "Coffee",
		Price: decimal.RequireFromString("500.00"),
		Stock: 8, MinStock: 2,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{
		Name: "Napkins", Category: "Packaging",
		Price: decimal.RequireFromString("1.00"),
		Stock: 50, MinStock: 10,
	})
	require.NoError(t, err)

	matches, err := svc.List(ctx, "coffee")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Arabica Beans", matches[0].Name)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, item := range all {
		assert.Equal(t, enums.SupplyStatusFor(item.Stock, item.MinStock), item.Status)
	}
}

func TestDelete(t *testing.T) {
	svc := newServiceFixture(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateInput{
		Name: "Stirrers", Category: "Packaging",
		Price: decimal.RequireFromString("0.50"),
		Stock: 200, MinStock: 50,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))

	err = svc.Delete(ctx, item.ID)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
