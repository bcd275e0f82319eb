package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// ItemUseCase catálogo de artículos: alta, consulta y reposición de stock.
// Las cantidades solo cambian a través del StockLedger.
type ItemUseCase struct {
	runner
	stock *ledger.StockLedger
	log   zerolog.Logger
	now   func() time.Time
}

// NewItemUseCase construye el caso de uso. tx puede ser nil (almacén local).
func NewItemUseCase(repos repository.Repositories, tx ledger.TxRunner, stock *ledger.StockLedger, log zerolog.Logger) *ItemUseCase {
	if stock == nil {
		stock = ledger.NewStockLedger()
	}
	return &ItemUseCase{
		runner: runner{repos: repos, tx: tx, stock: stock},
		stock:  stock,
		log:    log,
		now:    time.Now,
	}
}

// Create da de alta un artículo. El SKU, si viene, es único por cuenta.
func (uc *ItemUseCase) Create(ctx context.Context, accountID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Quantity < 0 || in.Quantity > entity.MaxQuantity || in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	sku := strings.TrimSpace(in.SKU)
	if sku != "" {
		existing, err := uc.repos.Items.List(ctx, accountID)
		if err != nil {
			return nil, domain.Persistence("listar artículos", err)
		}
		for _, it := range existing {
			if strings.EqualFold(it.SKU, sku) {
				return nil, domain.ErrDuplicate
			}
		}
	}

	now := uc.now()
	item := &entity.InventoryItem{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      name,
		SKU:       sku,
		Quantity:  in.Quantity,
		Unit:      strings.TrimSpace(in.Unit),
		CostPrice: in.CostPrice.Round(2),
		SalePrice: in.SalePrice.Round(2),
		Category:  strings.TrimSpace(in.Category),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repos.Items.Create(ctx, item); err != nil {
		return nil, domain.Persistence("crear artículo", err)
	}
	uc.log.Info().Str("account_id", accountID).Str("item_id", item.ID).Int("quantity", item.Quantity).Msg("artículo creado")
	resp := dto.ItemToResponse(item)
	return &resp, nil
}

// List artículos de la cuenta, más recientes primero.
func (uc *ItemUseCase) List(ctx context.Context, accountID string) ([]dto.ItemResponse, error) {
	items, err := uc.repos.Items.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar artículos", err)
	}
	return dto.ItemsToResponse(items), nil
}

// Get un artículo por ID.
func (uc *ItemUseCase) Get(ctx context.Context, accountID, id string) (*dto.ItemResponse, error) {
	item, err := uc.repos.Items.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, domain.Persistence("leer artículo", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ItemToResponse(item)
	return &resp, nil
}

// Restock acredita stock al artículo. Con UnitCost recalcula el costo promedio ponderado.
func (uc *ItemUseCase) Restock(ctx context.Context, accountID, id string, in dto.RestockRequest) (*dto.ItemResponse, error) {
	if in.Quantity <= 0 || in.Quantity > entity.MaxQuantity {
		return nil, domain.ErrInvalidInput
	}
	var unitCost *decimal.Decimal
	if in.UnitCost != nil {
		c := in.UnitCost.Round(2)
		unitCost = &c
	}
	var updated *entity.InventoryItem
	err := uc.run(ctx, func(repos repository.Repositories) error {
		item, err := uc.stock.Receive(ctx, repos.Items, accountID, id, in.Quantity, unitCost)
		if err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, domain.Persistence("reponer stock", err)
	}
	uc.log.Info().Str("account_id", accountID).Str("item_id", id).Int("added", in.Quantity).Int("quantity", updated.Quantity).Msg("stock repuesto")
	resp := dto.ItemToResponse(updated)
	return &resp, nil
}
