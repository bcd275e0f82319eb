package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
	"github.com/jhoicas/bizflow-api/internal/infrastructure/localstore"
)

const acc = "acc-1"

var errDisco = errors.New("disco lleno")

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func requireDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	require.True(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

func newRepos(t *testing.T, items ...*entity.InventoryItem) repository.Repositories {
	t.Helper()
	repos := localstore.New().Repositories()
	for _, it := range items {
		it.AccountID = acc
		require.NoError(t, repos.Items.Create(context.Background(), it))
	}
	return repos
}

func quantity(t *testing.T, repos repository.Repositories, id string) int {
	t.Helper()
	it, err := repos.Items.GetByID(context.Background(), acc, id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

func customers(t *testing.T, repos repository.Repositories) []*entity.Customer {
	t.Helper()
	list, err := repos.Customers.List(context.Background(), acc)
	require.NoError(t, err)
	return list
}

func sales(t *testing.T, repos repository.Repositories) []*entity.Sale {
	t.Helper()
	list, err := repos.Sales.List(context.Background(), acc)
	require.NoError(t, err)
	return list
}

func newProcessor(repos repository.Repositories, tx ledger.TxRunner, p ledger.Policies) *ledger.SaleProcessor {
	return ledger.NewSaleProcessor(repos, tx, ledger.NewStockLedger(), ledger.NewBalanceLedger(p), zerolog.Nop())
}

// failingSales falla siempre al insertar.
type failingSales struct {
	repository.SaleRepository
}

func (failingSales) Create(context.Context, *entity.Sale) error { return errDisco }

// failingItemUpdates falla al actualizar el artículo failID.
type failingItemUpdates struct {
	repository.ItemRepository
	failID string
}

func (f *failingItemUpdates) Update(ctx context.Context, it *entity.InventoryItem) error {
	if it.ID == f.failID {
		return errDisco
	}
	return f.ItemRepository.Update(ctx, it)
}

// directTx ejecuta fn sobre los mismos repositorios, como haría una transacción que siempre confirma.
type directTx struct {
	repos repository.Repositories
	runs  int
}

func (d *directTx) RunLedger(_ context.Context, fn func(repository.Repositories) error) error {
	d.runs++
	return fn(d.repos)
}
