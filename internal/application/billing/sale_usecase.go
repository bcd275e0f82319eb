package billing

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// SaleUseCase punto de venta: traduce el carrito HTTP a una venta del libro y expone las consultas.
type SaleUseCase struct {
	sales     repository.SaleRepository
	completer SaleCompleter
}

func NewSaleUseCase(sales repository.SaleRepository, completer SaleCompleter) *SaleUseCase {
	return &SaleUseCase{sales: sales, completer: completer}
}

// Create completa la venta. Errores: ErrInvalidInput, ErrInsufficientStock o ErrPersistence.
func (uc *SaleUseCase) Create(ctx context.Context, accountID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	lines := make([]ledger.CartLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, ledger.CartLine{ItemID: it.ItemID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	sale, err := uc.completer.CompleteSale(ctx, accountID, ledger.SaleRequest{
		Customer: ledger.CustomerForm{
			Name:    in.Customer.Name,
			Phone:   in.Customer.Phone,
			Address: in.Customer.Address,
			Email:   in.Customer.Email,
		},
		Lines:      lines,
		PaidAmount: in.PaidAmount,
	})
	if err != nil {
		return nil, err
	}
	resp := dto.SaleToResponse(sale)
	return &resp, nil
}

// List ventas de la cuenta, más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, accountID string) ([]dto.SaleResponse, error) {
	list, err := uc.sales.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar ventas", err)
	}
	return dto.SalesToResponse(list), nil
}

// Get una venta por ID.
func (uc *SaleUseCase) Get(ctx context.Context, accountID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.find(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.SaleToResponse(sale)
	return &resp, nil
}

func (uc *SaleUseCase) find(ctx context.Context, accountID, id string) (*entity.Sale, error) {
	sale, err := uc.sales.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, domain.Persistence("leer venta", err)
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}
