package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// ReceiptUseCase genera el recibo imprimible (PDF) de una venta registrada.
type ReceiptUseCase struct {
	sales    repository.SaleRepository
	shop     ports.ShopInfo
	renderer ports.ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(sales repository.SaleRepository, shop ports.ShopInfo, renderer ports.ReceiptRenderer) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, shop: shop, renderer: renderer}
}

// DownloadReceipt recupera la venta y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe en la cuenta.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, accountID, saleID string) ([]byte, string, error) {
	sale, err := uc.sales.GetByID(ctx, accountID, saleID)
	if err != nil {
		return nil, "", domain.Persistence("leer venta", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err := uc.renderer.RenderReceipt(ctx, uc.shop, sale)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("recibo_%s.pdf", shortID(sale.ID)), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}
