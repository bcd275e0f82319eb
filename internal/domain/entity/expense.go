package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense gasto operativo; solo lo consume el agregador financiero.
type Expense struct {
	ID          string
	AccountID   string
	Date        time.Time
	Category    string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}
