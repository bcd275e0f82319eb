// Package pdf genera el recibo de venta con Maroto v2.
//
// Layout de la página A5:
//
//	┌──────────────────────────────────────────────┐
//	│  HEADER: Tienda          │  N° Recibo + Fecha │
//	│  ──────────────────────────────────────────  │
//	│  CLIENTE: Nombre + teléfono + dirección       │
//	│  ──────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | P.Unit | Subtotal   │
//	│  ──────────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / Saldo              │
//	│  FOOTER: QR con el ID de la venta + leyenda   │
//	└──────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDue     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ ports.ReceiptRenderer = (*MarotoReceiptRenderer)(nil)

// MarotoReceiptRenderer implementa ports.ReceiptRenderer usando Maroto v2.
// Las fuentes base del PDF solo cubren Latin-1: los montos se imprimen con dígitos
// latinos y un símbolo fuera de ese rango se omite.
type MarotoReceiptRenderer struct{}

// NewMarotoReceiptRenderer construye el generador.
func NewMarotoReceiptRenderer() *MarotoReceiptRenderer { return &MarotoReceiptRenderer{} }

// RenderReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptRenderer) RenderReceipt(_ context.Context, shop ports.ShopInfo, sale *entity.Sale) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta nil")
	}
	amounts := money.NewFormatter("en", latin1(shop.Symbol))

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta", true).
		WithAuthor(nonEmpty(shop.Name, "bizflow"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shop, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(sale.Items, amounts)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale, amounts))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y N° de recibo + fecha (der).
func headerRow(shop ports.ShopInfo, sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(shop.Name, "bizflow"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("#"+receiptNumber(sale.ID), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+sale.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del comprador tal como quedaron en la venta.
func customerRow(sale *entity.Sale) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.CustomerName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 5,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Dirección: %s",
				nonEmpty(sale.CustomerPhone, "-"),
				nonEmpty(sale.CustomerAddress, "-"),
			), props.Text{Size: 7, Top: 10, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Artículo", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea de la venta.
func tableDetailRows(lines []entity.SaleLine, amounts *money.Formatter) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := fmt.Sprintf("%d", l.Quantity)
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.ItemName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(amounts.Format(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(amounts.Format(l.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: Total / Pagado / Saldo alineados a la derecha. El saldo va en rojo si es > 0.
func totalsRow(sale *entity.Sale, amounts *money.Formatter) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top, Color: c})
	}
	dueColor := colorGray
	if sale.DueAmount.IsPositive() {
		dueColor = colorDue
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("TOTAL:", 1),
			label("Pagado:", 7),
			label("Saldo:", 13),
		),
		col.New(4).Add(
			value(amounts.Format(sale.TotalAmount), 1, colorPrimary),
			value(amounts.Format(sale.PaidAmount), 7, nil),
			value(amounts.Format(sale.DueAmount), 13, dueColor),
		),
	)
}

// footerRow: QR con el ID de la venta + estado.
func footerRow(sale *entity.Sale) core.Row {
	status := "PAGADO"
	if sale.Status == entity.SaleStatusPending {
		status = "SALDO PENDIENTE"
	}
	return row.New(30).Add(
		col.New(4).Add(code.NewQr("venta:"+sale.ID, props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New(status, props.Text{Style: fontstyle.Bold, Size: 10, Top: 4, Left: 3, Color: colorPrimary}),
			text.New("Gracias por su compra.", props.Text{Size: 8, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

// receiptNumber últimos 8 caracteres del ID en mayúsculas.
func receiptNumber(id string) string {
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// latin1 devuelve s si todas sus runas entran en Latin-1, si no "".
func latin1(s string) string {
	for _, r := range s {
		if r > 0xFF {
			return ""
		}
	}
	return s
}
