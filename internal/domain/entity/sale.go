package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta, derivados de DueAmount.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
)

// Sale es el registro inmutable de una venta. Guarda una copia de los datos del
// cliente al momento de la venta; editar el cliente después no altera el histórico.
type Sale struct {
	ID              string
	AccountID       string
	Date            time.Time
	CustomerID      string // informativo; la venta no depende de él
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Items           []SaleLine
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	DueAmount       decimal.Decimal
	Status          string
	CreatedAt       time.Time
}

// SaleLine línea de la venta con nombre, precio y unidad copiados del artículo.
type SaleLine struct {
	ItemID    string
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	Unit      string
}

// Subtotal devuelve UnitPrice × Quantity.
func (l SaleLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// StatusFor deriva el estado a partir del saldo pendiente.
func StatusFor(due decimal.Decimal) string {
	if due.GreaterThan(decimal.Zero) {
		return SaleStatusPending
	}
	return SaleStatusCompleted
}
