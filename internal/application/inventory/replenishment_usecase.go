package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/finance"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

const salesWindowDays = 90

// ReplenishmentUseCase lista los artículos en stock bajo con una cantidad sugerida de pedido,
// priorizados por lo vendido en los últimos 90 días.
type ReplenishmentUseCase struct {
	repos     repository.Repositories
	threshold int
	now       func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso. threshold <= 0 usa el default del dashboard.
func NewReplenishmentUseCase(repos repository.Repositories, threshold int) *ReplenishmentUseCase {
	if threshold <= 0 {
		threshold = finance.DefaultLowStockThreshold
	}
	return &ReplenishmentUseCase{repos: repos, threshold: threshold, now: time.Now}
}

// GenerateReplenishmentList artículos con cantidad <= umbral. Stock ideal = 2 × umbral.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, accountID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	items, err := uc.repos.Items.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar artículos", err)
	}
	low := finance.LowStock(items, uc.threshold)
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	sales, err := uc.repos.Sales.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar ventas", err)
	}
	since := uc.now().AddDate(0, 0, -salesWindowDays)
	sold := make(map[string]int)
	for _, s := range sales {
		if s.Date.Before(since) {
			continue
		}
		for _, l := range s.Items {
			sold[l.ItemID] += l.Quantity
		}
	}

	ideal := uc.threshold * 2
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, it := range low {
		qty := ideal - it.Quantity
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ItemID:             it.ID,
			SKU:                it.SKU,
			ItemName:           it.Name,
			CurrentStock:       it.Quantity,
			Threshold:          uc.threshold,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           it.CostPrice,
			EstimatedOrderCost: it.CostPrice.Mul(decimal.NewFromInt(int64(qty))),
			UnitsSoldLast90:    sold[it.ID],
		})
	}

	// Prioridad: más vendido primero; a igual venta, menos stock.
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].UnitsSoldLast90 != suggestions[j].UnitsSoldLast90 {
			return suggestions[i].UnitsSoldLast90 > suggestions[j].UnitsSoldLast90
		}
		return suggestions[i].CurrentStock < suggestions[j].CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
