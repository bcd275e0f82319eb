package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la tienda con su saldo acumulado.
// TotalDue es lo pendiente de cobro; TotalSpent depende de la política de gasto configurada.
type Customer struct {
	ID           string
	AccountID    string
	Name         string
	Phone        string // clave natural para deduplicar clientes creados desde una venta
	Address      string
	Email        string
	TotalSpent   decimal.Decimal
	TotalDue     decimal.Decimal
	ReminderDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasDue indica si el cliente tiene saldo pendiente.
func (c *Customer) HasDue() bool {
	return c.TotalDue.GreaterThan(decimal.Zero)
}
