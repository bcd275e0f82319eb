package ledger_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

func itemA() *entity.InventoryItem {
	return &entity.InventoryItem{ID: "A", Name: "Arroz", Unit: "kg", Quantity: 10, CostPrice: d("60"), SalePrice: d("100")}
}

func rahim() ledger.CustomerForm {
	return ledger.CustomerForm{Name: "Rahim", Phone: "01711000000", Address: "Dhaka"}
}

func TestCompleteSale_Ejemplo(t *testing.T) {
	repos := newRepos(t, itemA())
	proc := newProcessor(repos, nil, ledger.DefaultPolicies())

	sale, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
		Customer:   rahim(),
		Lines:      []ledger.CartLine{{ItemID: "A", Quantity: 3}},
		PaidAmount: d("200"),
	})
	require.NoError(t, err)

	requireDec(t, "300", sale.TotalAmount, "total")
	requireDec(t, "200", sale.PaidAmount, "paid")
	requireDec(t, "100", sale.DueAmount, "due")
	assert.Equal(t, entity.SaleStatusPending, sale.Status)
	assert.Equal(t, "Rahim", sale.CustomerName)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Arroz", sale.Items[0].ItemName)
	assert.Equal(t, "kg", sale.Items[0].Unit)

	assert.Equal(t, 7, quantity(t, repos, "A"))

	cs := customers(t, repos)
	require.Len(t, cs, 1)
	requireDec(t, "100", cs[0].TotalDue, "customer due")
	requireDec(t, "300", cs[0].TotalSpent, "customer spent")
	assert.Equal(t, cs[0].ID, sale.CustomerID)

	stored := sales(t, repos)
	require.Len(t, stored, 1)
	assert.Equal(t, sale.ID, stored[0].ID)
}

func TestCompleteSale_StockInsuficienteNoMutaNada(t *testing.T) {
	a := itemA()
	a.Quantity = 3
	repos := newRepos(t, a)
	proc := newProcessor(repos, nil, ledger.DefaultPolicies())

	_, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
		Customer:   rahim(),
		Lines:      []ledger.CartLine{{ItemID: "A", Quantity: 5}},
		PaidAmount: d("0"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, quantity(t, repos, "A"))
	assert.Empty(t, customers(t, repos))
	assert.Empty(t, sales(t, repos))
}

func TestCompleteSale_SegundaVentaMismoTelefono(t *testing.T) {
	repos := newRepos(t, itemA())
	proc := newProcessor(repos, nil, ledger.DefaultPolicies())
	ctx := context.Background()

	_, err := proc.CompleteSale(ctx, acc, ledger.SaleRequest{Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 1}}, PaidAmount: d("100")})
	require.NoError(t, err)
	second, err := proc.CompleteSale(ctx, acc, ledger.SaleRequest{Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 2}}, PaidAmount: d("50")})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPending, second.Status)

	cs := customers(t, repos)
	require.Len(t, cs, 1)
	requireDec(t, "150", cs[0].TotalDue, "due")
	requireDec(t, "300", cs[0].TotalSpent, "spent")
	assert.Len(t, sales(t, repos), 2)
}

func TestCompleteSale_PrecioExplicitoYLineasRepetidas(t *testing.T) {
	repos := newRepos(t, itemA())
	proc := newProcessor(repos, nil, ledger.DefaultPolicies())

	sale, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
		Customer: rahim(),
		Lines: []ledger.CartLine{
			{ItemID: "A", Quantity: 2, UnitPrice: dp("90.50")},
			{ItemID: "A", Quantity: 1},
		},
		PaidAmount: d("281"),
	})
	require.NoError(t, err)
	requireDec(t, "281", sale.TotalAmount, "2×90.50 + 100")
	assert.Equal(t, entity.SaleStatusCompleted, sale.Status)
	assert.Len(t, sale.Items, 2)
	assert.Equal(t, 7, quantity(t, repos, "A"))
}

func TestCompleteSale_Validaciones(t *testing.T) {
	repos := newRepos(t, itemA())
	proc := newProcessor(repos, nil, ledger.DefaultPolicies())
	ctx := context.Background()

	cases := map[string]ledger.SaleRequest{
		"carrito vacío":   {Customer: rahim()},
		"sin nombre":      {Customer: ledger.CustomerForm{Phone: "1"}, Lines: []ledger.CartLine{{ItemID: "A", Quantity: 1}}},
		"pago negativo":   {Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 1}}, PaidAmount: d("-1")},
		"cantidad cero":   {Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 0}}},
		"precio negativo": {Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 1, UnitPrice: dp("-5")}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := proc.CompleteSale(ctx, acc, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 10, quantity(t, repos, "A"))
}

func TestCompleteSale_Sobrepago(t *testing.T) {
	ctx := context.Background()
	req := ledger.SaleRequest{Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 1}}, PaidAmount: d("150")}

	repos := newRepos(t, itemA())
	sale, err := newProcessor(repos, nil, ledger.DefaultPolicies()).CompleteSale(ctx, acc, req)
	require.NoError(t, err)
	requireDec(t, "100", sale.PaidAmount, "clamp")
	requireDec(t, "0", sale.DueAmount, "due")

	p := ledger.DefaultPolicies()
	p.Overpayment = ledger.OverpaymentReject
	repos = newRepos(t, itemA())
	_, err = newProcessor(repos, nil, p).CompleteSale(ctx, acc, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, quantity(t, repos, "A"))
}

func TestCompleteSale_SagaCompensaClienteNuevo(t *testing.T) {
	repos := newRepos(t, itemA())
	broken := repos
	broken.Sales = failingSales{SaleRepository: repos.Sales}
	proc := newProcessor(broken, nil, ledger.DefaultPolicies())

	_, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
		Customer:   rahim(),
		Lines:      []ledger.CartLine{{ItemID: "A", Quantity: 3}},
		PaidAmount: d("100"),
	})
	require.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, errDisco)

	assert.Equal(t, 10, quantity(t, repos, "A"), "stock restaurado")
	cs := customers(t, repos)
	require.Len(t, cs, 1, "sin borrado el cliente nuevo queda con saldos en cero")
	assert.True(t, cs[0].TotalDue.IsZero())
	assert.True(t, cs[0].TotalSpent.IsZero())
	assert.Empty(t, sales(t, repos))
}

func TestCompleteSale_SagaCompensaClienteExistente(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t, itemA())
	_, err := newProcessor(repos, nil, ledger.DefaultPolicies()).CompleteSale(ctx, acc, ledger.SaleRequest{
		Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 1}}, PaidAmount: d("0"),
	})
	require.NoError(t, err)

	broken := repos
	broken.Sales = failingSales{SaleRepository: repos.Sales}
	_, err = newProcessor(broken, nil, ledger.DefaultPolicies()).CompleteSale(ctx, acc, ledger.SaleRequest{
		Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 4}}, PaidAmount: d("0"),
	})
	require.ErrorIs(t, err, domain.ErrPersistence)

	assert.Equal(t, 9, quantity(t, repos, "A"))
	cs := customers(t, repos)
	require.Len(t, cs, 1)
	requireDec(t, "100", cs[0].TotalDue, "saldo previo")
	requireDec(t, "100", cs[0].TotalSpent, "gasto previo")
	assert.Len(t, sales(t, repos), 1)
}

func TestCompleteSale_CaminoTransaccional(t *testing.T) {
	repos := newRepos(t, itemA())
	tx := &directTx{repos: repos}
	proc := newProcessor(repos, tx, ledger.DefaultPolicies())
	assert.True(t, proc.Transactional())

	_, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
		Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "A", Quantity: 2}}, PaidAmount: d("200"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.runs)
	assert.Equal(t, 8, quantity(t, repos, "A"))
}

func TestCompleteSale_ArticuloDesconocido(t *testing.T) {
	repos := newRepos(t, itemA())
	proc := newProcessor(repos, nil, ledger.DefaultPolicies())

	_, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
		Customer: rahim(), Lines: []ledger.CartLine{{ItemID: "fantasma", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, customers(t, repos))
}

func TestCompleteSale_CantidadDesbordadaNoSeRegistra(t *testing.T) {
	repos := newRepos(t, itemA())
	proc := newProcessor(repos, nil, ledger.DefaultPolicies())

	_, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
		Customer: rahim(),
		Lines: []ledger.CartLine{
			{ItemID: "A", Quantity: math.MaxInt},
			{ItemID: "A", Quantity: 2},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, quantity(t, repos, "A"))
	assert.Empty(t, sales(t, repos))
	assert.Empty(t, customers(t, repos))
}

func TestCompleteSale_VentasConcurrentesNoSobrevenden(t *testing.T) {
	for round := 0; round < 50; round++ {
		a := itemA()
		a.Quantity = 5
		repos := newRepos(t, a)
		proc := newProcessor(repos, nil, ledger.DefaultPolicies())

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			ok      int
			unknown []error
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
					Customer:   ledger.CustomerForm{Name: "Mostrador"},
					Lines:      []ledger.CartLine{{ItemID: "A", Quantity: 5}},
					PaidAmount: d("500"),
				})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case !errors.Is(err, domain.ErrInsufficientStock):
					unknown = append(unknown, err)
				}
			}()
		}
		wg.Wait()

		require.Empty(t, unknown, "ronda %d", round)
		require.Equal(t, 1, ok, "ronda %d: una sola venta cabe en el stock", round)
		require.Len(t, sales(t, repos), 1, "ronda %d", round)
		require.Equal(t, 0, quantity(t, repos, "A"), "ronda %d", round)
	}
}

func TestCompleteSale_MontosRedondeadosACentavos(t *testing.T) {
	repos := newRepos(t, itemA())
	proc := newProcessor(repos, nil, ledger.DefaultPolicies())

	sale, err := proc.CompleteSale(context.Background(), acc, ledger.SaleRequest{
		Customer:   rahim(),
		Lines:      []ledger.CartLine{{ItemID: "A", Quantity: 3, UnitPrice: dp("0.335")}},
		PaidAmount: d("0.504"),
	})
	require.NoError(t, err)

	requireDec(t, "0.34", sale.Items[0].UnitPrice, "precio a centavos")
	requireDec(t, "1.02", sale.TotalAmount, "total = Σ líneas")
	requireDec(t, "0.5", sale.PaidAmount, "pagado a centavos")
	requireDec(t, "0.52", sale.DueAmount, "due")

	sum := sale.Items[0].Subtotal()
	assert.True(t, sum.Equal(sale.TotalAmount))
	assert.True(t, sale.TotalAmount.Equal(sale.TotalAmount.Round(ledger.MoneyPlaces)))
}
