package ports

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/finance"
)

// ShopInfo datos de la tienda impresos en recibos y reportes.
type ShopInfo struct {
	Name   string
	Locale string
	Symbol string
}

// ReceiptRenderer genera el recibo de una venta.
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, shop ShopInfo, sale *entity.Sale) ([]byte, error)
}

// Report todo lo que entra en la exportación del negocio.
type Report struct {
	Shop        ShopInfo
	GeneratedAt time.Time
	Summary     finance.Summary
	Items       []*entity.InventoryItem
	Customers   []*entity.Customer
	Sales       []*entity.Sale
	Expenses    []*entity.Expense
	Margins     []dto.ItemMarginDTO // ranking del mes en curso
}

// ReportExporter serializa el reporte a un libro de cálculo.
type ReportExporter interface {
	ExportReport(ctx context.Context, r Report) ([]byte, error)
	// ContentType MIME del archivo generado.
	ContentType() string
	// Extension incluye el punto, ej. ".xlsx".
	Extension() string
}

// ItemSheetParser lee artículos desde una planilla subida por el usuario.
type ItemSheetParser interface {
	ParseItems(r io.Reader) ([]dto.CreateItemRequest, error)
}
