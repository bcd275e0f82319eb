package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bizflow-api/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 unidades a 60 + 10 unidades a 80 → 70
	got := inventory.CostCalculator(10, decimal.NewFromInt(60), 10, decimal.NewFromInt(80))
	assert.True(t, decimal.NewFromInt(70).Equal(got), "got %s", got)
}

func TestCostCalculator_SinStockPrevio(t *testing.T) {
	got := inventory.CostCalculator(0, decimal.Zero, 4, decimal.RequireFromString("12.5"))
	assert.True(t, decimal.RequireFromString("12.5").Equal(got))
}

func TestCostCalculator_CantidadCero(t *testing.T) {
	got := inventory.CostCalculator(0, decimal.NewFromInt(10), 0, decimal.NewFromInt(20))
	assert.True(t, got.IsZero())
}
