package dto

import "github.com/shopspring/decimal"

// MarginsReportRequest query de GET /api/reports/margins.
type MarginsReportRequest struct {
	StartDate string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	TopN      int    `query:"top_n" validate:"gte=0,lte=200"`
}

// PeriodDTO rango de fechas del reporte (YYYY-MM-DD).
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MarginsReportDTO rentabilidad por artículo en el período.
type MarginsReportDTO struct {
	Period           PeriodDTO       `json:"period"`
	SalesCount       int             `json:"sales_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCOGS        decimal.Decimal `json:"total_cogs"`
	TotalMargin      decimal.Decimal `json:"total_margin"`
	OverallMarginPct decimal.Decimal `json:"overall_margin_pct"`
	Ranking          []ItemMarginDTO `json:"ranking"`
	ParetoItems      []ItemMarginDTO `json:"pareto_items"`
}

// ItemMarginDTO una fila del ranking por margen bruto.
type ItemMarginDTO struct {
	Rank             int             `json:"rank"`
	ItemID           string          `json:"item_id"`
	SKU              string          `json:"sku,omitempty"`
	ItemName         string          `json:"item_name"`
	UnitsSold        int             `json:"units_sold"`
	GrossRevenue     decimal.Decimal `json:"gross_revenue"`
	TotalCOGS        decimal.Decimal `json:"total_cogs"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	MarginPct        decimal.Decimal `json:"margin_pct"`
	RevenuePct       decimal.Decimal `json:"revenue_pct"`
	CumulativeRevPct decimal.Decimal `json:"cumulative_revenue_pct"`
	IsTopPareto      bool            `json:"is_top_pareto"`
}
