package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// CartLine línea del carrito. UnitPrice nil usa el precio de venta del artículo.
type CartLine struct {
	ItemID    string
	Quantity  int
	UnitPrice *decimal.Decimal
}

// SaleRequest datos enviados desde el punto de venta.
type SaleRequest struct {
	Customer   CustomerForm
	Lines      []CartLine
	PaidAmount decimal.Decimal
}

// SaleProcessor valida el carrito, descuenta stock, carga al cliente y guarda la venta como una unidad.
type SaleProcessor struct {
	repos   repository.Repositories
	tx      TxRunner
	stock   *StockLedger
	balance *BalanceLedger
	log     zerolog.Logger
	now     func() time.Time
}

// NewSaleProcessor construye el procesador. Con tx nil los pasos 3 a 5 corren como saga sobre repos.
func NewSaleProcessor(
	repos repository.Repositories,
	tx TxRunner,
	stock *StockLedger,
	balance *BalanceLedger,
	log zerolog.Logger,
) *SaleProcessor {
	if stock == nil {
		stock = NewStockLedger()
	}
	if balance == nil {
		balance = NewBalanceLedger(DefaultPolicies())
	}
	return &SaleProcessor{
		repos:   repos,
		tx:      tx,
		stock:   stock,
		balance: balance,
		log:     log,
		now:     time.Now,
	}
}

// Transactional indica si las ventas corren dentro de una transacción de base de datos.
func (p *SaleProcessor) Transactional() bool { return p.tx != nil }

// CompleteSale registra una venta completa. InsufficientStock aborta sin persistir nada;
// cualquier falla posterior deja el libro como estaba y retorna PersistenceError.
func (p *SaleProcessor) CompleteSale(ctx context.Context, accountID string, req SaleRequest) (*entity.Sale, error) {
	if len(req.Lines) == 0 || strings.TrimSpace(req.Customer.Name) == "" || req.PaidAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	// Snapshot de artículos y precios (fuera de la tx, solo lectura)
	lines, stockLines, err := p.priceLines(ctx, accountID, req.Lines)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	paid := RoundMoney(req.PaidAmount)
	if paid.GreaterThan(total) {
		if p.balance.policies.Overpayment == OverpaymentReject {
			return nil, domain.ErrInvalidInput
		}
		paid = total
	}
	due := DueAmount(total, paid)

	saleID, err := uuid.NewV7()
	if err != nil {
		return nil, domain.Persistence("generar id de venta", err)
	}
	now := p.now()
	sale := &entity.Sale{
		ID:              saleID.String(),
		AccountID:       accountID,
		Date:            now,
		CustomerName:    strings.TrimSpace(req.Customer.Name),
		CustomerPhone:   strings.TrimSpace(req.Customer.Phone),
		CustomerAddress: strings.TrimSpace(req.Customer.Address),
		Items:           lines,
		TotalAmount:     total,
		PaidAmount:      paid,
		DueAmount:       due,
		Status:          entity.StatusFor(due),
		CreatedAt:       now,
	}

	if p.tx != nil {
		err = p.tx.RunLedger(ctx, func(repos repository.Repositories) error {
			return p.commit(ctx, repos, nil, accountID, req.Customer, stockLines, sale)
		})
	} else {
		// Sin tx, la verificación de stock y el descuento deben ocurrir sin otra venta en medio.
		sg := newSaga(p.log.With().Str("sale_id", sale.ID).Logger())
		err = p.stock.Exclusive(func() error {
			cerr := p.commit(ctx, p.repos, sg, accountID, req.Customer, stockLines, sale)
			if cerr == nil {
				return nil
			}
			if uerr := sg.compensate(ctx); uerr != nil {
				return errors.Join(cerr, domain.Persistence("compensar venta", uerr))
			}
			return cerr
		})
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		p.log.Error().Err(err).Str("account_id", accountID).Str("sale_id", sale.ID).Msg("venta no registrada")
		return nil, domain.Persistence("registrar venta", err)
	}

	p.log.Info().
		Str("account_id", accountID).
		Str("sale_id", sale.ID).
		Str("customer_id", sale.CustomerID).
		Str("total", total.String()).
		Str("status", sale.Status).
		Msg("venta registrada")
	return sale, nil
}

// commit pasos 3 a 5: descontar stock, cargar al cliente, guardar la venta.
func (p *SaleProcessor) commit(
	ctx context.Context,
	repos repository.Repositories,
	sg *saga,
	accountID string,
	form CustomerForm,
	stockLines []StockLine,
	sale *entity.Sale,
) error {
	if _, err := p.stock.ReserveAndDebit(ctx, repos.Items, accountID, stockLines); err != nil {
		return err
	}
	sg.record("restaurar stock", func(ctx context.Context) error {
		return p.stock.Restore(ctx, repos.Items, accountID, stockLines)
	})

	charged, previous, err := p.balance.chargeOrCreate(ctx, repos.Customers, accountID, form, sale.TotalAmount, sale.PaidAmount)
	if err != nil {
		return err
	}
	sg.record("revertir saldo del cliente", func(ctx context.Context) error {
		return p.balance.revertCharge(ctx, repos.Customers, charged, previous)
	})
	sale.CustomerID = charged.ID

	if err := repos.Sales.Create(ctx, sale); err != nil {
		return domain.Persistence("guardar venta", err)
	}
	return nil
}

// priceLines copia nombre, unidad y precio de cada artículo. Un artículo inexistente cuenta como stock cero.
func (p *SaleProcessor) priceLines(ctx context.Context, accountID string, cart []CartLine) ([]entity.SaleLine, []StockLine, error) {
	stockLines := make([]StockLine, 0, len(cart))
	for _, c := range cart {
		if c.ItemID == "" || c.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidInput
		}
		if c.UnitPrice != nil && c.UnitPrice.IsNegative() {
			return nil, nil, domain.ErrInvalidInput
		}
		stockLines = append(stockLines, StockLine{ItemID: c.ItemID, Quantity: c.Quantity})
	}
	requested, _, err := mergeLines(stockLines)
	if err != nil {
		return nil, nil, err
	}

	itemsByID := make(map[string]*entity.InventoryItem, len(requested))
	lines := make([]entity.SaleLine, 0, len(cart))
	for _, c := range cart {
		item, ok := itemsByID[c.ItemID]
		if !ok {
			item, err = p.repos.Items.GetByID(ctx, accountID, c.ItemID)
			if err != nil {
				return nil, nil, domain.Persistence("leer artículo", err)
			}
			if item == nil {
				return nil, nil, domain.InsufficientStock(c.ItemID, requested[c.ItemID], 0)
			}
			itemsByID[c.ItemID] = item
		}
		price := item.SalePrice
		if c.UnitPrice != nil {
			price = *c.UnitPrice
		}
		// Cada línea a centavos: total = Σ precio × cantidad se conserva tal cual en NUMERIC(14,2).
		price = RoundMoney(price)
		lines = append(lines, entity.SaleLine{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  c.Quantity,
			UnitPrice: price,
			Unit:      item.Unit,
		})
	}
	return lines, stockLines, nil
}
