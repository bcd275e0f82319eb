package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain/finance"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalDue        decimal.Decimal `json:"total_due"`
	CashReceived    decimal.Decimal `json:"cash_received"`
	CostOfGoodsSold decimal.Decimal `json:"cost_of_goods_sold"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	SalesCount      int             `json:"sales_count"`
	PendingSales    int             `json:"pending_sales"`

	LowStock         []ItemResponse     `json:"low_stock"`
	TopDebtors       []CustomerResponse `json:"top_debtors"`
	ExpenseBreakdown []CategoryTotalDTO `json:"expense_breakdown"`
	SalesTrend       []TrendPointDTO    `json:"sales_trend"`

	GeneratedAt time.Time `json:"generated_at"`
}

// CategoryTotalDTO total de gastos de una categoría.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// TrendPointDTO una venta en la serie de tendencia.
type TrendPointDTO struct {
	SaleID string          `json:"sale_id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// SummaryToDTO mapea el resumen del agregador.
func SummaryToDTO(s finance.Summary, at time.Time) *DashboardSummaryDTO {
	breakdown := make([]CategoryTotalDTO, 0, len(s.ExpenseBreakdown))
	for _, c := range s.ExpenseBreakdown {
		breakdown = append(breakdown, CategoryTotalDTO{Category: c.Category, Amount: c.Amount})
	}
	trend := make([]TrendPointDTO, 0, len(s.SalesTrend))
	for _, p := range s.SalesTrend {
		trend = append(trend, TrendPointDTO{SaleID: p.SaleID, Date: p.Date, Amount: p.Amount})
	}
	return &DashboardSummaryDTO{
		TotalRevenue:     s.TotalRevenue,
		TotalDue:         s.TotalDue,
		CashReceived:     s.CashReceived,
		CostOfGoodsSold:  s.CostOfGoodsSold,
		TotalExpenses:    s.TotalExpenses,
		NetProfit:        s.NetProfit,
		SalesCount:       s.SalesCount,
		PendingSales:     s.PendingSales,
		LowStock:         ItemsToResponse(s.LowStock),
		TopDebtors:       CustomersToResponse(s.TopDebtors),
		ExpenseBreakdown: breakdown,
		SalesTrend:       trend,
		GeneratedAt:      at,
	}
}
