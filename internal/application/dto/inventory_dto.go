package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// CreateItemRequest body para POST /api/inventory.
type CreateItemRequest struct {
	Name      string          `json:"name" validate:"required,max=200"`
	SKU       string          `json:"sku" validate:"max=64"`
	Quantity  int             `json:"quantity" validate:"gte=0,max=1000000"`
	Unit      string          `json:"unit" validate:"max=20"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Category  string          `json:"category" validate:"max=100"`
}

// RestockRequest body para POST /api/inventory/:id/restock.
// Con UnitCost el costo del artículo pasa a ser el promedio ponderado.
type RestockRequest struct {
	Quantity int              `json:"quantity" validate:"gt=0,max=1000000"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// ItemResponse artículo de inventario.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  int             `json:"quantity"`
	Unit      string          `json:"unit,omitempty"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Category  string          `json:"category,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemToResponse mapea la entidad al DTO.
func ItemToResponse(it *entity.InventoryItem) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		SKU:       it.SKU,
		Quantity:  it.Quantity,
		Unit:      it.Unit,
		CostPrice: it.CostPrice,
		SalePrice: it.SalePrice,
		Category:  it.Category,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

// ItemsToResponse mapea una lista.
func ItemsToResponse(items []*entity.InventoryItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ItemToResponse(it))
	}
	return out
}

// ReplenishmentSuggestionDTO artículo en stock bajo con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	ItemID             string          `json:"item_id"`
	SKU                string          `json:"sku,omitempty"`
	ItemName           string          `json:"item_name"`
	CurrentStock       int             `json:"current_stock"`
	Threshold          int             `json:"threshold"`
	IdealStock         int             `json:"ideal_stock"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	UnitsSoldLast90    int             `json:"units_sold_last_90d"`
	Priority           int             `json:"priority"` // 1 = más urgente
}

// ImportItemsResponse resultado de POST /api/inventory/import.
type ImportItemsResponse struct {
	Created []ItemResponse `json:"created"`
	Skipped []string       `json:"skipped"` // motivo por registro omitido
}
