package ledger

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/inventory"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// StockLine cantidad solicitada de un artículo.
type StockLine struct {
	ItemID   string
	Quantity int
}

// StockLedger aplica débitos y créditos sobre InventoryItem.Quantity.
// Es el único componente que modifica cantidades.
type StockLedger struct {
	now func() time.Time
	// mu serializa los movimientos sobre almacenes sin bloqueo de filas (ver Exclusive).
	mu sync.Mutex
}

// NewStockLedger construye el libro de stock.
func NewStockLedger() *StockLedger {
	return &StockLedger{now: time.Now}
}

// Exclusive ejecuta fn con el libro tomado. En el almacén local GetForUpdate no bloquea,
// así que todo lo que lee y reescribe cantidades fuera de una transacción pasa por acá.
// No es reentrante: fn no debe volver a llamar a Exclusive.
func (l *StockLedger) Exclusive(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

// ReserveAndDebit verifica que todas las líneas tengan stock y solo entonces descuenta.
// Todo o nada: un faltante en cualquier línea retorna InsufficientStock sin mutar nada.
// Las líneas repetidas del mismo artículo se suman antes de verificar.
func (l *StockLedger) ReserveAndDebit(
	ctx context.Context,
	items repository.ItemRepository,
	accountID string,
	lines []StockLine,
) ([]*entity.InventoryItem, error) {
	requested, order, err := mergeLines(lines)
	if err != nil {
		return nil, err
	}

	// Bloqueo en orden de ID para no generar deadlocks entre ventas concurrentes.
	ids := make([]string, len(order))
	copy(ids, order)
	sort.Strings(ids)
	locked := make(map[string]*entity.InventoryItem, len(ids))
	for _, id := range ids {
		item, err := items.GetForUpdate(ctx, accountID, id)
		if err != nil {
			return nil, domain.Persistence("leer artículo", err)
		}
		locked[id] = item
	}

	for _, id := range order {
		available := 0
		if item := locked[id]; item != nil {
			available = item.Quantity
		}
		if available < requested[id] {
			return nil, domain.InsufficientStock(id, requested[id], available)
		}
	}

	now := l.now()
	applied := make([]StockLine, 0, len(order))
	debited := make([]*entity.InventoryItem, 0, len(order))
	for _, id := range order {
		item := locked[id]
		previous := item.Quantity
		item.Quantity = previous - requested[id]
		item.UpdatedAt = now
		if err := items.Update(ctx, item); err != nil {
			item.Quantity = previous
			failure := domain.Persistence("descontar stock", err)
			if rerr := l.Restore(ctx, items, accountID, applied); rerr != nil {
				return nil, errors.Join(failure, rerr)
			}
			return nil, failure
		}
		applied = append(applied, StockLine{ItemID: id, Quantity: requested[id]})
		debited = append(debited, item)
	}
	return debited, nil
}

// Credit suma quantity al artículo sin condiciones (reposición o reversión).
func (l *StockLedger) Credit(
	ctx context.Context,
	items repository.ItemRepository,
	accountID, itemID string,
	quantity int,
) (*entity.InventoryItem, error) {
	return l.Receive(ctx, items, accountID, itemID, quantity, nil)
}

// Receive acredita quantity y, si llega unitCost, recalcula el costo por promedio ponderado.
func (l *StockLedger) Receive(
	ctx context.Context,
	items repository.ItemRepository,
	accountID, itemID string,
	quantity int,
	unitCost *decimal.Decimal,
) (*entity.InventoryItem, error) {
	if itemID == "" || quantity <= 0 || quantity > entity.MaxQuantity {
		return nil, domain.ErrInvalidInput
	}
	if unitCost != nil && unitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := items.GetForUpdate(ctx, accountID, itemID)
	if err != nil {
		return nil, domain.Persistence("leer artículo", err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.Quantity > entity.MaxQuantity-quantity {
		return nil, domain.ErrInvalidInput
	}
	if unitCost != nil {
		item.CostPrice = inventory.CostCalculator(item.Quantity, item.CostPrice, quantity, *unitCost)
	}
	item.Quantity += quantity
	item.UpdatedAt = l.now()
	if err := items.Update(ctx, item); err != nil {
		return nil, domain.Persistence("acreditar stock", err)
	}
	return item, nil
}

// Restore es la acción compensatoria de ReserveAndDebit: devuelve cada línea al stock.
// Intenta todas las líneas aunque alguna falle y retorna los errores unidos.
func (l *StockLedger) Restore(
	ctx context.Context,
	items repository.ItemRepository,
	accountID string,
	lines []StockLine,
) error {
	var errs []error
	for _, line := range lines {
		if _, err := l.Credit(ctx, items, accountID, line.ItemID, line.Quantity); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// mergeLines suma cantidades por artículo conservando el orden de primera aparición.
// Un total por artículo mayor que MaxQuantity es InvalidInput.
func mergeLines(lines []StockLine) (map[string]int, []string, error) {
	if len(lines) == 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	requested := make(map[string]int, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.ItemID == "" || line.Quantity <= 0 || line.Quantity > entity.MaxQuantity {
			return nil, nil, domain.ErrInvalidInput
		}
		sum, seen := requested[line.ItemID]
		if !seen {
			order = append(order, line.ItemID)
		}
		// Ambos sumandos están acotados por MaxQuantity: la suma no desborda.
		if sum+line.Quantity > entity.MaxQuantity {
			return nil, nil, domain.ErrInvalidInput
		}
		requested[line.ItemID] = sum + line.Quantity
	}
	return requested, order, nil
}
