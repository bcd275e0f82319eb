package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/finance"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
	"github.com/jhoicas/bizflow-api/internal/infrastructure/localstore"
)

const acc = "acc-1"

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seed: 1 venta de 3 × 100 (pagó 200), costo 60, un gasto de 50.
func seed(t *testing.T) repository.Repositories {
	t.Helper()
	ctx := context.Background()
	repos := localstore.New().Repositories()
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "A", AccountID: acc, Name: "Arroz", SKU: "ARZ", Quantity: 7, CostPrice: d("60"), SalePrice: d("100")}))
	require.NoError(t, repos.Items.Create(ctx, &entity.InventoryItem{ID: "B", AccountID: acc, Name: "Sal", Quantity: 40, CostPrice: d("5"), SalePrice: d("10")}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", AccountID: acc, Name: "Rahim", Phone: "017", TotalSpent: d("300"), TotalDue: d("100")}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
		ID: "s1", AccountID: acc, Date: fixedNow.AddDate(0, 0, -1), CustomerID: "c1", CustomerName: "Rahim",
		Items:       []entity.SaleLine{{ItemID: "A", ItemName: "Arroz", Quantity: 3, UnitPrice: d("100")}},
		TotalAmount: d("300"), PaidAmount: d("200"), DueAmount: d("100"), Status: entity.SaleStatusPending,
	}))
	require.NoError(t, repos.Expenses.Create(ctx, &entity.Expense{ID: "e1", AccountID: acc, Date: fixedNow, Category: "alquiler", Amount: d("50")}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "p1", AccountID: acc, Name: "Karim Traders", Category: "Arroz"}))
	return repos
}

func TestDashboard_GetSummary(t *testing.T) {
	uc := NewDashboardUseCase(seed(t), finance.Options{})
	uc.now = func() time.Time { return fixedNow }

	s, err := uc.GetSummary(context.Background(), acc)
	require.NoError(t, err)
	assert.True(t, d("300").Equal(s.TotalRevenue))
	assert.True(t, d("100").Equal(s.TotalDue))
	assert.True(t, d("200").Equal(s.CashReceived))
	assert.True(t, d("180").Equal(s.CostOfGoodsSold))
	assert.True(t, d("50").Equal(s.TotalExpenses))
	assert.True(t, d("70").Equal(s.NetProfit))
	assert.Equal(t, 1, s.PendingSales)
	require.Len(t, s.TopDebtors, 1)
	assert.Equal(t, "Rahim", s.TopDebtors[0].Name)
	assert.Empty(t, s.LowStock)
	assert.Equal(t, fixedNow, s.GeneratedAt)

	_, snap, err := uc.Summary(context.Background(), acc)
	require.NoError(t, err)
	require.Len(t, snap.Suppliers, 1)
	assert.Equal(t, "Karim Traders", snap.Suppliers[0].Name)

	low, err := NewDashboardUseCase(seed(t), finance.Options{LowStockThreshold: 7}).LowStock(context.Background(), acc)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "A", low[0].ID)
}

type brokenExpenses struct{ repository.ExpenseRepository }

func (brokenExpenses) List(context.Context, string) ([]*entity.Expense, error) {
	return nil, errors.New("conexión perdida")
}

func TestDashboard_FallaDeLectura(t *testing.T) {
	repos := seed(t)
	repos.Expenses = brokenExpenses{}
	_, err := NewDashboardUseCase(repos, finance.Options{}).GetSummary(context.Background(), acc)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestMargins_RankingYPareto(t *testing.T) {
	ctx := context.Background()
	repos := seed(t)
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
		ID: "s2", AccountID: acc, Date: fixedNow.AddDate(0, 0, -2), CustomerName: "Karim",
		Items:       []entity.SaleLine{{ItemID: "B", ItemName: "Sal", Quantity: 10, UnitPrice: d("10")}},
		TotalAmount: d("100"), PaidAmount: d("100"), Status: entity.SaleStatusCompleted,
	}))
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{
		ID: "viejo", AccountID: acc, Date: fixedNow.AddDate(0, -3, 0), CustomerName: "Karim",
		Items:       []entity.SaleLine{{ItemID: "B", ItemName: "Sal", Quantity: 999, UnitPrice: d("10")}},
		TotalAmount: d("9990"), PaidAmount: d("9990"), Status: entity.SaleStatusCompleted,
	}))

	uc := NewMarginsUseCase(repos)
	uc.now = func() time.Time { return fixedNow }
	r, err := uc.GetMarginsReport(ctx, acc, dto.MarginsReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-01", r.Period.StartDate)
	assert.Equal(t, 2, r.SalesCount)
	assert.True(t, d("400").Equal(r.TotalRevenue))
	assert.True(t, d("230").Equal(r.TotalCOGS))
	assert.True(t, d("170").Equal(r.TotalMargin))
	assert.True(t, d("42.5").Equal(r.OverallMarginPct))

	require.Len(t, r.Ranking, 2)
	assert.Equal(t, "A", r.Ranking[0].ItemID, "margen 120 antes que 50")
	assert.Equal(t, "ARZ", r.Ranking[0].SKU)
	assert.True(t, d("40").Equal(r.Ranking[0].MarginPct))
	assert.True(t, d("75").Equal(r.Ranking[0].RevenuePct))
	assert.True(t, r.Ranking[0].IsTopPareto)
	assert.False(t, r.Ranking[1].IsTopPareto)
	assert.Len(t, r.ParetoItems, 1)

	_, err = uc.GetMarginsReport(ctx, acc, dto.MarginsReportRequest{StartDate: "2026-10-10", EndDate: "2026-10-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type fakeExporter struct{ got ports.Report }

func (f *fakeExporter) ExportReport(_ context.Context, r ports.Report) ([]byte, error) {
	f.got = r
	return []byte("xlsx"), nil
}
func (f *fakeExporter) ContentType() string { return "application/test" }
func (f *fakeExporter) Extension() string   { return ".xlsx" }

func TestReport_Export(t *testing.T) {
	repos := seed(t)
	dash := NewDashboardUseCase(repos, finance.Options{})
	dash.now = func() time.Time { return fixedNow }
	margins := NewMarginsUseCase(repos)
	margins.now = dash.now
	exp := &fakeExporter{}

	uc := NewReportUseCase(dash, margins, exp, ports.ShopInfo{Name: "Tienda"}, zerolog.Nop())
	data, name, err := uc.Export(context.Background(), acc)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "reporte_octubre_2026.xlsx", name)
	assert.Equal(t, "application/test", uc.ContentType())

	assert.Len(t, exp.got.Items, 2)
	assert.Len(t, exp.got.Sales, 1)
	assert.Len(t, exp.got.Margins, 1)
	assert.True(t, d("70").Equal(exp.got.Summary.NetProfit))
	assert.Equal(t, "Tienda", exp.got.Shop.Name)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Febrero 2026", monthLabel(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))
}
