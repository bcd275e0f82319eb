// Package money formatea montos según el idioma configurado (golang.org/x/text).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Valores por defecto: taka bangladesí.
const (
	DefaultLocale = "bn-BD"
	DefaultSymbol = "৳"
)

// Formatter imprime montos con separadores y dígitos del idioma.
type Formatter struct {
	printer *message.Printer
	symbol  string
	scale   int
}

// NewFormatter construye el formateador. Un locale inválido usa DefaultLocale.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol, scale: 2}
}

// WithScale devuelve una copia que imprime n decimales.
func (f *Formatter) WithScale(n int) *Formatter {
	c := *f
	c.scale = n
	return &c
}

// Amount formatea solo el número, redondeado a la escala.
func (f *Formatter) Amount(d decimal.Decimal) string {
	v, _ := d.Round(int32(f.scale)).Float64()
	return f.printer.Sprint(number.Decimal(v, number.Scale(f.scale)))
}

// Format antepone el símbolo de moneda.
func (f *Formatter) Format(d decimal.Decimal) string {
	return f.symbol + f.Amount(d)
}

// Symbol símbolo configurado.
func (f *Formatter) Symbol() string { return f.symbol }
