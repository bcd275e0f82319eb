// Package finance deriva los indicadores financieros del negocio a partir de las
// colecciones de inventario, ventas, clientes y gastos.
//
// Todas las funciones son puras: no mutan sus entradas, no cachean y el resultado
// no depende del orden en que lleguen las colecciones.
package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// Valores por defecto del dashboard.
const (
	DefaultLowStockThreshold = 5
	DefaultTopDebtors        = 5
	DefaultTrendSize         = 7
)

// Snapshot colecciones sobre las que se calcula el resumen.
type Snapshot struct {
	Items     []*entity.InventoryItem
	Sales     []*entity.Sale
	Customers []*entity.Customer
	Expenses  []*entity.Expense
	Suppliers []*entity.Supplier // no entra en las cifras; contexto del asistente
}

// Options parámetros del resumen. Los valores <= 0 usan los defaults.
type Options struct {
	LowStockThreshold int
	TopDebtors        int
	TrendSize         int
}

func (o Options) withDefaults() Options {
	if o.LowStockThreshold <= 0 {
		o.LowStockThreshold = DefaultLowStockThreshold
	}
	if o.TopDebtors <= 0 {
		o.TopDebtors = DefaultTopDebtors
	}
	if o.TrendSize <= 0 {
		o.TrendSize = DefaultTrendSize
	}
	return o
}

// Summary indicadores derivados.
type Summary struct {
	TotalRevenue     decimal.Decimal
	TotalDue         decimal.Decimal
	CashReceived     decimal.Decimal
	CostOfGoodsSold  decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetProfit        decimal.Decimal
	SalesCount       int
	PendingSales     int
	LowStock         []*entity.InventoryItem
	TopDebtors       []*entity.Customer
	ExpenseBreakdown []CategoryTotal
	SalesTrend       []TrendPoint
}

// CategoryTotal total de gastos por categoría.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// TrendPoint una venta en la serie de tendencia.
type TrendPoint struct {
	SaleID string
	Date   time.Time
	Amount decimal.Decimal
}

// Summarize calcula todos los indicadores en una sola pasada lógica.
func Summarize(s Snapshot, opts Options) Summary {
	opts = opts.withDefaults()

	revenue := TotalRevenue(s.Sales)
	due := TotalDue(s.Customers)
	cogs := CostOfGoodsSold(s.Sales, s.Items)
	expenses := TotalExpenses(s.Expenses)

	pending := 0
	for _, sale := range s.Sales {
		if sale.DueAmount.GreaterThan(decimal.Zero) {
			pending++
		}
	}

	return Summary{
		TotalRevenue:     revenue,
		TotalDue:         due,
		CashReceived:     CashReceived(revenue, due),
		CostOfGoodsSold:  cogs,
		TotalExpenses:    expenses,
		NetProfit:        NetProfit(revenue, cogs, expenses),
		SalesCount:       len(s.Sales),
		PendingSales:     pending,
		LowStock:         LowStock(s.Items, opts.LowStockThreshold),
		TopDebtors:       TopDebtors(s.Customers, opts.TopDebtors),
		ExpenseBreakdown: ExpenseBreakdown(s.Expenses),
		SalesTrend:       SalesTrend(s.Sales, opts.TrendSize),
	}
}

// TotalRevenue Σ sale.TotalAmount (contado y crédito).
func TotalRevenue(sales []*entity.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.TotalAmount)
	}
	return total
}

// TotalDue Σ customer.TotalDue.
func TotalDue(customers []*entity.Customer) decimal.Decimal {
	total := decimal.Zero
	for _, c := range customers {
		total = total.Add(c.TotalDue)
	}
	return total
}

// CashReceived max(0, revenue - due).
func CashReceived(revenue, due decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, revenue.Sub(due))
}

// CostOfGoodsSold Σ costo actual del artículo × cantidad vendida.
// Si el artículo ya no existe la línea aporta 0 (subestima el costo; limitación conocida).
func CostOfGoodsSold(sales []*entity.Sale, items []*entity.InventoryItem) decimal.Decimal {
	costByID := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		costByID[it.ID] = it.CostPrice
	}
	total := decimal.Zero
	for _, s := range sales {
		for _, line := range s.Items {
			cost, ok := costByID[line.ItemID]
			if !ok {
				continue
			}
			total = total.Add(cost.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
	}
	return total
}

// TotalExpenses Σ expense.Amount.
func TotalExpenses(expenses []*entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// NetProfit revenue - cogs - expenses.
func NetProfit(revenue, cogs, expenses decimal.Decimal) decimal.Decimal {
	return revenue.Sub(cogs).Sub(expenses)
}

// LowStock artículos con cantidad <= threshold, ordenados por cantidad y nombre.
func LowStock(items []*entity.InventoryItem, threshold int) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0)
	for _, it := range items {
		if it.Quantity <= threshold {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity < out[j].Quantity
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// TopDebtors clientes con deuda, de mayor a menor, hasta n.
func TopDebtors(customers []*entity.Customer, n int) []*entity.Customer {
	out := make([]*entity.Customer, 0)
	for _, c := range customers {
		if c.HasDue() {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if cmp := out[i].TotalDue.Cmp(out[j].TotalDue); cmp != 0 {
			return cmp > 0
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ExpenseBreakdown suma los gastos por categoría, ordenado por categoría.
func ExpenseBreakdown(expenses []*entity.Expense) []CategoryTotal {
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	out := make([]CategoryTotal, 0, len(byCategory))
	for cat, amount := range byCategory {
		out = append(out, CategoryTotal{Category: cat, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// SalesTrend las últimas n ventas en orden cronológico.
func SalesTrend(sales []*entity.Sale, n int) []TrendPoint {
	sorted := make([]*entity.Sale, len(sales))
	copy(sorted, sales)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	out := make([]TrendPoint, 0, len(sorted))
	for _, s := range sorted {
		out = append(out, TrendPoint{SaleID: s.ID, Date: s.Date, Amount: s.TotalAmount})
	}
	return out
}
