package billing

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// SaleCompleter registra una venta completa (stock, cliente y venta) como una unidad.
// Lo implementa ledger.SaleProcessor.
type SaleCompleter interface {
	CompleteSale(ctx context.Context, accountID string, req ledger.SaleRequest) (*entity.Sale, error)
}

var _ SaleCompleter = (*ledger.SaleProcessor)(nil)
