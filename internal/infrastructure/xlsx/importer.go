package xlsx

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/domain"
)

var _ ports.ItemSheetParser = (*ItemImporter)(nil)

// Columnas esperadas en la primera hoja (la fila 1 es el encabezado):
// Nombre | SKU | Cantidad | Unidad | Costo | Precio | Categoría
const (
	colName = iota
	colSKU
	colQuantity
	colUnit
	colCost
	colPrice
	colCategory
)

// ItemImporter lee artículos desde un .xlsx.
type ItemImporter struct{}

func NewItemImporter() *ItemImporter { return &ItemImporter{} }

// ParseItems devuelve una solicitud por fila no vacía. Un valor ilegible retorna
// ErrInvalidInput con el número de fila.
func (i *ItemImporter) ParseItems(r io.Reader) ([]dto.CreateItemRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: archivo xlsx ilegible: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: el libro no tiene hojas", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %s: %w", sheets[0], err)
	}
	if len(rows) <= 1 {
		return []dto.CreateItemRequest{}, nil
	}

	out := make([]dto.CreateItemRequest, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		rowNo := idx + 2
		if blank(row) {
			continue
		}
		item, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrInvalidInput, rowNo, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func parseRow(row []string) (dto.CreateItemRequest, error) {
	item := dto.CreateItemRequest{
		Name:     cell(row, colName),
		SKU:      cell(row, colSKU),
		Unit:     cell(row, colUnit),
		Category: cell(row, colCategory),
	}
	if item.Name == "" {
		return item, fmt.Errorf("nombre vacío")
	}
	var err error
	if s := cell(row, colQuantity); s != "" {
		if item.Quantity, err = strconv.Atoi(s); err != nil {
			return item, fmt.Errorf("cantidad %q", s)
		}
	}
	if item.CostPrice, err = amount(cell(row, colCost)); err != nil {
		return item, fmt.Errorf("costo: %v", err)
	}
	if item.SalePrice, err = amount(cell(row, colPrice)); err != nil {
		return item, fmt.Errorf("precio: %v", err)
	}
	return item, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func amount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
