package ledger_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

func TestReserveAndDebit_DescuentaTodo(t *testing.T) {
	repos := newRepos(t,
		&entity.InventoryItem{ID: "A", Quantity: 10},
		&entity.InventoryItem{ID: "B", Quantity: 4},
	)
	stock := ledger.NewStockLedger()

	debited, err := stock.ReserveAndDebit(context.Background(), repos.Items, acc, []ledger.StockLine{
		{ItemID: "B", Quantity: 4},
		{ItemID: "A", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Len(t, debited, 2)
	assert.Equal(t, 7, quantity(t, repos, "A"))
	assert.Equal(t, 0, quantity(t, repos, "B"))
}

func TestReserveAndDebit_FaltanteNoMuta(t *testing.T) {
	repos := newRepos(t,
		&entity.InventoryItem{ID: "A", Quantity: 10},
		&entity.InventoryItem{ID: "B", Quantity: 3},
	)
	stock := ledger.NewStockLedger()

	_, err := stock.ReserveAndDebit(context.Background(), repos.Items, acc, []ledger.StockLine{
		{ItemID: "A", Quantity: 2},
		{ItemID: "B", Quantity: 5},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "B", ise.ItemID)
	assert.Equal(t, 5, ise.Requested)
	assert.Equal(t, 3, ise.Available)

	assert.Equal(t, 10, quantity(t, repos, "A"))
	assert.Equal(t, 3, quantity(t, repos, "B"))
}

func TestReserveAndDebit_LineasRepetidasSeSuman(t *testing.T) {
	repos := newRepos(t, &entity.InventoryItem{ID: "A", Quantity: 5})
	stock := ledger.NewStockLedger()

	_, err := stock.ReserveAndDebit(context.Background(), repos.Items, acc, []ledger.StockLine{
		{ItemID: "A", Quantity: 3},
		{ItemID: "A", Quantity: 3},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, quantity(t, repos, "A"))
}

func TestReserveAndDebit_ArticuloDesconocido(t *testing.T) {
	repos := newRepos(t)
	_, err := ledger.NewStockLedger().ReserveAndDebit(context.Background(), repos.Items, acc, []ledger.StockLine{{ItemID: "zz", Quantity: 1}})

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 0, ise.Available)
}

func TestReserveAndDebit_CantidadInvalida(t *testing.T) {
	repos := newRepos(t, &entity.InventoryItem{ID: "A", Quantity: 5})
	stock := ledger.NewStockLedger()

	_, err := stock.ReserveAndDebit(context.Background(), repos.Items, acc, []ledger.StockLine{{ItemID: "A", Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = stock.ReserveAndDebit(context.Background(), repos.Items, acc, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserveAndDebit_FallaDeEscrituraRestaura(t *testing.T) {
	repos := newRepos(t,
		&entity.InventoryItem{ID: "A", Quantity: 10},
		&entity.InventoryItem{ID: "B", Quantity: 10},
	)
	failing := &failingItemUpdates{ItemRepository: repos.Items, failID: "B"}

	_, err := ledger.NewStockLedger().ReserveAndDebit(context.Background(), failing, acc, []ledger.StockLine{
		{ItemID: "A", Quantity: 2},
		{ItemID: "B", Quantity: 2},
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errDisco)
	assert.Equal(t, 10, quantity(t, repos, "A"), "A se descontó y se restauró")
	assert.Equal(t, 10, quantity(t, repos, "B"))
}

func TestCredit(t *testing.T) {
	repos := newRepos(t, &entity.InventoryItem{ID: "A", Quantity: 1})
	stock := ledger.NewStockLedger()

	it, err := stock.Credit(context.Background(), repos.Items, acc, "A", 9)
	require.NoError(t, err)
	assert.Equal(t, 10, it.Quantity)
	assert.Equal(t, 10, quantity(t, repos, "A"))

	_, err = stock.Credit(context.Background(), repos.Items, acc, "A", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = stock.Credit(context.Background(), repos.Items, acc, "nope", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReceive_CostoPromedioPonderado(t *testing.T) {
	repos := newRepos(t, &entity.InventoryItem{ID: "A", Quantity: 10, CostPrice: d("60")})

	it, err := ledger.NewStockLedger().Receive(context.Background(), repos.Items, acc, "A", 10, dp("80"))
	require.NoError(t, err)
	assert.Equal(t, 20, it.Quantity)
	requireDec(t, "70", it.CostPrice, "costo ponderado")

	_, err = ledger.NewStockLedger().Receive(context.Background(), repos.Items, acc, "A", 1, dp("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserveAndDebit_TotalDesbordadoEsInvalido(t *testing.T) {
	repos := newRepos(t, &entity.InventoryItem{ID: "A", Quantity: 10})
	stock := ledger.NewStockLedger()

	_, err := stock.ReserveAndDebit(context.Background(), repos.Items, acc, []ledger.StockLine{
		{ItemID: "A", Quantity: math.MaxInt},
		{ItemID: "A", Quantity: 2},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = stock.ReserveAndDebit(context.Background(), repos.Items, acc, []ledger.StockLine{
		{ItemID: "A", Quantity: entity.MaxQuantity},
		{ItemID: "A", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, quantity(t, repos, "A"))
}

func TestReceive_TopeDeCantidad(t *testing.T) {
	repos := newRepos(t, &entity.InventoryItem{ID: "A", Quantity: 10})
	stock := ledger.NewStockLedger()

	_, err := stock.Receive(context.Background(), repos.Items, acc, "A", math.MaxInt, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = stock.Receive(context.Background(), repos.Items, acc, "A", entity.MaxQuantity-9, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, quantity(t, repos, "A"))

	it, err := stock.Receive(context.Background(), repos.Items, acc, "A", entity.MaxQuantity-10, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxQuantity, it.Quantity)
}
