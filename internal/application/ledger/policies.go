package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain/customer"
)

// SpentPolicy define qué representa Customer.TotalSpent.
type SpentPolicy string

const (
	// SpentGoodsValue valor de mercadería de por vida: solo crece al vender (TotalAmount).
	SpentGoodsValue SpentPolicy = "goods_value"
	// SpentCashReceived comportamiento heredado: crece al vender y otra vez al cobrar.
	// Cuenta dos veces lo cobrado después de la venta.
	SpentCashReceived SpentPolicy = "cash_received"
)

// OverpaymentPolicy define qué hacer cuando el pago supera el total o la deuda.
type OverpaymentPolicy string

const (
	// OverpaymentClamp acepta el pago y deja la deuda en cero, sin registrar vuelto.
	OverpaymentClamp OverpaymentPolicy = "clamp"
	// OverpaymentReject rechaza el pago con ErrInvalidInput.
	OverpaymentReject OverpaymentPolicy = "reject"
)

// ParseSpentPolicy vacío equivale a goods_value.
func ParseSpentPolicy(s string) (SpentPolicy, error) {
	switch SpentPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SpentGoodsValue:
		return SpentGoodsValue, nil
	case SpentCashReceived:
		return SpentCashReceived, nil
	}
	return "", fmt.Errorf("política de gasto desconocida: %q", s)
}

// ParseOverpaymentPolicy vacío equivale a clamp.
func ParseOverpaymentPolicy(s string) (OverpaymentPolicy, error) {
	switch OverpaymentPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", OverpaymentClamp:
		return OverpaymentClamp, nil
	case OverpaymentReject:
		return OverpaymentReject, nil
	}
	return "", fmt.Errorf("política de sobrepago desconocida: %q", s)
}

// Policies agrupa las decisiones configurables del libro de saldos.
type Policies struct {
	Identity    customer.KeyPolicy
	Spent       SpentPolicy
	Overpayment OverpaymentPolicy
}

// DefaultPolicies coincidencia exacta, gasto = valor de mercadería, sobrepago aceptado.
func DefaultPolicies() Policies {
	return Policies{
		Identity:    customer.ExactKey{},
		Spent:       SpentGoodsValue,
		Overpayment: OverpaymentClamp,
	}
}

// MoneyPlaces decimales de todo monto guardado (NUMERIC(14,2) en PostgreSQL).
const MoneyPlaces = 2

// RoundMoney redondea v a MoneyPlaces. Los montos entran al libro ya redondeados para que
// ambos almacenes guarden lo mismo y el total siga siendo la suma exacta de las líneas.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyPlaces)
}

// DueAmount max(0, total - paid).
func DueAmount(total, paid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, total.Sub(paid))
}
