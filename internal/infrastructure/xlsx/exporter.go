// Package xlsx exporta el reporte del negocio e importa artículos con excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/bizflow-api/internal/application/ports"
)

const (
	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetSummary   = "Resumen"
	sheetSales     = "Ventas"
	sheetCustomers = "Clientes"
	sheetItems     = "Inventario"
	sheetExpenses  = "Gastos"
	sheetMargins   = "Márgenes"
)

var _ ports.ReportExporter = (*Exporter)(nil)

// Exporter implementa ports.ReportExporter: un libro con una hoja por colección.
type Exporter struct{}

func NewExporter() *Exporter { return &Exporter{} }

func (e *Exporter) ContentType() string { return contentType }
func (e *Exporter) Extension() string   { return ".xlsx" }

// ExportReport arma el libro en memoria y devuelve sus bytes.
func (e *Exporter) ExportReport(_ context.Context, r ports.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// La hoja por defecto pasa a ser el resumen.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("xlsx: hoja resumen: %w", err)
	}
	for _, name := range []string{sheetSales, sheetCustomers, sheetItems, sheetExpenses, sheetMargins} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	w := &sheetWriter{f: f, header: bold}
	w.summary(r)
	w.sales(r)
	w.customers(r)
	w.items(r)
	w.expenses(r)
	w.margins(r)
	if w.err != nil {
		return nil, fmt.Errorf("xlsx: escribir celdas: %w", w.err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter guarda el primer error y deja de escribir.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

// row escribe values desde la columna A de la fila rowNo (1-based).
func (w *sheetWriter) row(sheet string, rowNo int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) headers(sheet string, headings ...interface{}) {
	w.row(sheet, 1, headings...)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(headings), 1)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellStyle(sheet, "A1", last, w.header)
}

func (w *sheetWriter) summary(r ports.Report) {
	s := r.Summary
	w.headers(sheetSummary, "Indicador", "Valor")
	rows := [][]interface{}{
		{"Tienda", r.Shop.Name},
		{"Generado", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Ventas totales", num(s.TotalRevenue)},
		{"Por cobrar", num(s.TotalDue)},
		{"Efectivo recibido", num(s.CashReceived)},
		{"Costo de mercadería vendida", num(s.CostOfGoodsSold)},
		{"Gastos", num(s.TotalExpenses)},
		{"Ganancia neta", num(s.NetProfit)},
		{"Cantidad de ventas", s.SalesCount},
		{"Ventas con saldo", s.PendingSales},
	}
	for i, v := range rows {
		w.row(sheetSummary, i+2, v...)
	}
}

func (w *sheetWriter) sales(r ports.Report) {
	w.headers(sheetSales, "ID", "Fecha", "Cliente", "Teléfono", "Artículos", "Total", "Pagado", "Saldo", "Estado")
	for i, s := range r.Sales {
		units := 0
		for _, l := range s.Items {
			units += l.Quantity
		}
		w.row(sheetSales, i+2, s.ID, s.Date.Format("2006-01-02 15:04"), s.CustomerName, s.CustomerPhone,
			units, num(s.TotalAmount), num(s.PaidAmount), num(s.DueAmount), s.Status)
	}
}

func (w *sheetWriter) customers(r ports.Report) {
	w.headers(sheetCustomers, "ID", "Nombre", "Teléfono", "Dirección", "Email", "Total comprado", "Deuda", "Recordatorio")
	for i, c := range r.Customers {
		reminder := ""
		if c.ReminderDate != nil {
			reminder = c.ReminderDate.Format("2006-01-02")
		}
		w.row(sheetCustomers, i+2, c.ID, c.Name, c.Phone, c.Address, c.Email, num(c.TotalSpent), num(c.TotalDue), reminder)
	}
}

func (w *sheetWriter) items(r ports.Report) {
	w.headers(sheetItems, "ID", "Nombre", "SKU", "Cantidad", "Unidad", "Costo", "Precio", "Categoría")
	for i, it := range r.Items {
		w.row(sheetItems, i+2, it.ID, it.Name, it.SKU, it.Quantity, it.Unit, num(it.CostPrice), num(it.SalePrice), it.Category)
	}
}

func (w *sheetWriter) expenses(r ports.Report) {
	w.headers(sheetExpenses, "ID", "Fecha", "Categoría", "Monto", "Descripción")
	for i, e := range r.Expenses {
		w.row(sheetExpenses, i+2, e.ID, e.Date.Format("2006-01-02"), e.Category, num(e.Amount), e.Description)
	}
}

func (w *sheetWriter) margins(r ports.Report) {
	w.headers(sheetMargins, "Rank", "Artículo", "SKU", "Unidades", "Ingresos", "Costo", "Margen", "Margen %", "Pareto")
	for i, m := range r.Margins {
		w.row(sheetMargins, i+2, m.Rank, m.ItemName, m.SKU, m.UnitsSold, num(m.GrossRevenue), num(m.TotalCOGS),
			num(m.GrossProfit), num(m.MarginPct), m.IsTopPareto)
	}
}

// num convierte a float64 para que la celda quede numérica.
func num(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
