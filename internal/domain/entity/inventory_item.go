package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity tope de unidades por artículo y por movimiento. Mantiene las sumas de
// cantidades lejos del desborde de int y dentro de INTEGER en PostgreSQL.
const MaxQuantity = 1_000_000

// InventoryItem representa un artículo del inventario de la tienda.
// Quantity solo cambia mediante débitos/créditos del libro de stock.
type InventoryItem struct {
	ID        string
	AccountID string
	Name      string
	SKU       string // opcional; único por cuenta si no está vacío
	Quantity  int    // nunca negativo tras una venta confirmada
	Unit      string // pieza, kg, litro...
	CostPrice decimal.Decimal
	SalePrice decimal.Decimal
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
