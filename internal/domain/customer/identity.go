// Package customer define cómo se identifica a un cliente a partir de su teléfono.
package customer

import (
	"fmt"
	"strings"
	"unicode"
)

// Políticas de coincidencia soportadas (CUSTOMER_MATCH_POLICY).
const (
	MatchExact  = "exact"
	MatchDigits = "digits"
)

// KeyPolicy normaliza un teléfono a su clave de identidad.
// Dos clientes son el mismo si sus claves coinciden y no están vacías.
type KeyPolicy interface {
	Key(phone string) string
	Name() string
}

// NewKeyPolicy construye la política por nombre. Vacío equivale a "exact".
func NewKeyPolicy(name string) (KeyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MatchExact:
		return ExactKey{}, nil
	case MatchDigits:
		return DigitsKey{}, nil
	default:
		return nil, fmt.Errorf("política de coincidencia desconocida: %q", name)
	}
}

// ExactKey compara el teléfono tal cual, sin espacios alrededor.
type ExactKey struct{}

func (ExactKey) Key(phone string) string { return strings.TrimSpace(phone) }
func (ExactKey) Name() string            { return MatchExact }

// DigitsKey compara solo los dígitos: "+880 1711-000000" y "8801711000000" son el mismo cliente.
type DigitsKey struct{}

func (DigitsKey) Key(phone string) string { return Digits(phone) }

func (DigitsKey) Name() string { return MatchDigits }

// Digits deja solo los dígitos del teléfono, en ASCII: "০১৭১১" y "01711" dan lo mismo.
func Digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			continue
		}
		if r < unicode.MaxASCII {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(byte('0' + digitValue(r)))
	}
	return b.String()
}

// digitValue valor de un dígito decimal Unicode. Cada sistema ocupa un bloque
// contiguo de diez puntos de código, del cero al nueve.
func digitValue(r rune) int {
	start := r
	for unicode.IsDigit(start - 1) {
		start--
	}
	return int(r-start) % 10
}

// Same indica si dos teléfonos identifican al mismo cliente bajo la política p.
func Same(p KeyPolicy, a, b string) bool {
	ka := p.Key(a)
	return ka != "" && ka == p.Key(b)
}
