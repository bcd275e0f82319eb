package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

const (
	defaultTopN     = 20
	maxTopN         = 200
	paretoThreshold = 80 // el top ~20% de artículos genera el 80% de ingresos
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// MarginsUseCase ranking de artículos por margen bruto en un período.
// El costo de cada línea es el costo actual del artículo, igual que el COGS del dashboard.
type MarginsUseCase struct {
	repos repository.Repositories
	now   func() time.Time
}

func NewMarginsUseCase(repos repository.Repositories) *MarginsUseCase {
	return &MarginsUseCase{repos: repos, now: time.Now}
}

// itemMargin acumulado de un artículo en el período.
type itemMargin struct {
	itemID, sku, name string
	units             int
	revenue, cogs     decimal.Decimal
}

// GetMarginsReport genera el reporte de márgenes para el período pedido (default: mes en curso).
func (uc *MarginsUseCase) GetMarginsReport(ctx context.Context, accountID string, req dto.MarginsReportRequest) (*dto.MarginsReportDTO, error) {
	start, end, err := parsePeriod(uc.now(), req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	sales, err := uc.repos.Sales.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar ventas", err)
	}
	items, err := uc.repos.Items.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar artículos", err)
	}

	rows, count := aggregateMargins(sales, items, start, end)
	report := buildReport(rows, topN)
	report.SalesCount = count
	report.Period = dto.PeriodDTO{StartDate: start.Format(dto.DateLayout), EndDate: end.Format(dto.DateLayout)}
	return report, nil
}

// aggregateMargins suma por artículo las líneas de las ventas dentro de [start, end].
func aggregateMargins(sales []*entity.Sale, items []*entity.InventoryItem, start, end time.Time) ([]itemMargin, int) {
	byID := make(map[string]*entity.InventoryItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	acc := make(map[string]*itemMargin)
	count := 0
	for _, s := range sales {
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		count++
		for _, l := range s.Items {
			m, ok := acc[l.ItemID]
			if !ok {
				m = &itemMargin{itemID: l.ItemID, name: l.ItemName}
				if it := byID[l.ItemID]; it != nil {
					m.sku = it.SKU
					m.name = it.Name
				}
				acc[l.ItemID] = m
			}
			m.units += l.Quantity
			m.revenue = m.revenue.Add(l.Subtotal())
			// Artículo borrado: costo cero.
			if it := byID[l.ItemID]; it != nil {
				m.cogs = m.cogs.Add(it.CostPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
			}
		}
	}
	rows := make([]itemMargin, 0, len(acc))
	for _, m := range acc {
		rows = append(rows, *m)
	}
	sort.Slice(rows, func(i, j int) bool {
		pi, pj := rows[i].revenue.Sub(rows[i].cogs), rows[j].revenue.Sub(rows[j].cogs)
		if !pi.Equal(pj) {
			return pi.GreaterThan(pj)
		}
		return rows[i].itemID < rows[j].itemID
	})
	return rows, count
}

// buildReport convierte las filas en DTOs enriquecidos con:
//   - Rank por margen bruto descendente.
//   - MarginPct y RevenuePct por artículo.
//   - CumulativeRevenuePct acumulado (curva Pareto).
//   - IsTopPareto mientras el acumulado no supere el 80%.
//
// Los totales cubren todas las filas aunque el ranking se corte en topN.
func buildReport(rows []itemMargin, topN int) *dto.MarginsReportDTO {
	var totalRevenue, totalCOGS decimal.Decimal
	for _, r := range rows {
		totalRevenue = totalRevenue.Add(r.revenue)
		totalCOGS = totalCOGS.Add(r.cogs)
	}
	totalMargin := totalRevenue.Sub(totalCOGS)

	report := &dto.MarginsReportDTO{
		TotalRevenue:     totalRevenue.Round(2),
		TotalCOGS:        totalCOGS.Round(2),
		TotalMargin:      totalMargin.Round(2),
		OverallMarginPct: percent(totalMargin, totalRevenue),
		Ranking:          []dto.ItemMarginDTO{},
		ParetoItems:      []dto.ItemMarginDTO{},
	}

	var cumulative decimal.Decimal
	for i, r := range rows {
		if i >= topN {
			break
		}
		profit := r.revenue.Sub(r.cogs)
		revenuePct := percent(r.revenue, totalRevenue)
		cumulative = cumulative.Add(revenuePct)
		// Se incluye el artículo que cruza el umbral.
		isPareto := cumulative.LessThanOrEqual(pareto80) || i == 0

		row := dto.ItemMarginDTO{
			Rank:             i + 1,
			ItemID:           r.itemID,
			SKU:              r.sku,
			ItemName:         r.name,
			UnitsSold:        r.units,
			GrossRevenue:     r.revenue.Round(2),
			TotalCOGS:        r.cogs.Round(2),
			GrossProfit:      profit.Round(2),
			MarginPct:        percent(profit, r.revenue),
			RevenuePct:       revenuePct,
			CumulativeRevPct: cumulative.Round(2),
			IsTopPareto:      isPareto,
		}
		report.Ranking = append(report.Ranking, row)
		if isPareto {
			report.ParetoItems = append(report.ParetoItems, row)
		}
	}
	return report
}

func percent(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// parsePeriod convierte los strings de fecha en time.Time; aplica valores por defecto si están vacíos.
func parsePeriod(now time.Time, startStr, endStr string) (start, end time.Time, err error) {
	if endStr == "" {
		end = now
	} else {
		end, err = time.ParseInLocation(dto.DateLayout, endStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date inválido: %w", err)
		}
		end = end.Add(24*time.Hour - time.Nanosecond) // inclusive hasta el final del día
	}

	if startStr == "" {
		// Primer día del mes de end
		start = time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	} else {
		start, err = time.ParseInLocation(dto.DateLayout, startStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date inválido: %w", err)
		}
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date no puede ser posterior a end_date")
	}
	return start, end, nil
}
