package localstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/infrastructure/localstore"
)

func TestItems_ListOrdenYCuenta(t *testing.T) {
	ctx := context.Background()
	repos := localstore.New().Repositories()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "a", AccountID: "acc", Name: "A", CreatedAt: base}))
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "b", AccountID: "acc", Name: "B", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "c", AccountID: "otra", Name: "C", CreatedAt: base}))

	list, err := repos.Items.List(ctx, "acc")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)

	other, err := repos.Items.GetByID(ctx, "acc", "c")
	require.NoError(t, err)
	assert.Nil(t, other, "un artículo de otra cuenta no es visible")
}

func TestItems_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repos := localstore.New().Repositories()
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "a", AccountID: "acc", Quantity: 3}))

	got, err := repos.Items.GetByID(ctx, "acc", "a")
	require.NoError(t, err)
	got.Quantity = 99

	again, err := repos.Items.GetByID(ctx, "acc", "a")
	require.NoError(t, err)
	assert.Equal(t, 3, again.Quantity)
}

func TestUpdate_Inexistente(t *testing.T) {
	repos := localstore.New().Repositories()
	err := repos.Customers.Update(context.Background(), &entity.Customer{ID: "x", AccountID: "acc"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_GeneraID(t *testing.T) {
	repos := localstore.New().Repositories()
	e := &entity.Expense{AccountID: "acc", Category: "luz", Amount: decimal.NewFromInt(20)}
	require.NoError(t, repos.Expenses.Create(context.Background(), e))
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestOpen_PersisteEnArchivo(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.json")

	s, err := localstore.Open(path)
	require.NoError(t, err)
	repos := s.Repositories()
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
		ID: "s1", AccountID: "acc", TotalAmount: decimal.RequireFromString("12.50"),
		Items: []entity.SaleLine{{ItemID: "a", ItemName: "Arroz", Quantity: 1, UnitPrice: decimal.RequireFromString("12.50")}},
	}))
	_, err = os.Stat(path)
	require.NoError(t, err)

	reopened, err := localstore.Open(path)
	require.NoError(t, err)
	sale, err := reopened.Repositories().Sales.GetByID(ctx, "acc", "s1")
	require.NoError(t, err)
	require.NotNil(t, sale)
	assert.True(t, sale.TotalAmount.Equal(decimal.RequireFromString("12.5")))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Arroz", sale.Items[0].ItemName)
}

func TestSuppliers_PersistenYFiltranPorCuenta(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")

	s, err := localstore.Open(path)
	require.NoError(t, err)
	repos := s.Repositories()
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{AccountID: "acc", Name: "Karim Traders"}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{AccountID: "otra", Name: "Ajena"}))

	reopened, err := localstore.Open(path)
	require.NoError(t, err)
	list, err := reopened.Repositories().Suppliers.List(ctx, "acc")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Karim Traders", list[0].Name)
	assert.NotEmpty(t, list[0].ID)
}
