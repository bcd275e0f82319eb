package localstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

type itemRepo struct{ s *Store }

func (r *itemRepo) List(_ context.Context, accountID string) ([]*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.items, func(v *entity.InventoryItem) (time.Time, string) { return v.CreatedAt, v.ID })
	out := make([]*entity.InventoryItem, 0, len(all))
	for _, it := range all {
		if it.AccountID == accountID {
			out = append(out, cloneItem(it))
		}
	}
	return out, nil
}

func (r *itemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	return r.s.mutate(func() (func(), error) {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if _, exists := r.s.items[item.ID]; exists {
			return nil, fmt.Errorf("artículo %s: %w", item.ID, domain.ErrDuplicate)
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now()
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = item.CreatedAt
		}
		r.s.items[item.ID] = cloneItem(item)
		id := item.ID
		return func() { delete(r.s.items, id) }, nil
	})
}

func (r *itemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	return r.s.mutate(func() (func(), error) {
		prev, ok := r.s.items[item.ID]
		if !ok || prev.AccountID != item.AccountID {
			return nil, fmt.Errorf("artículo %s: %w", item.ID, domain.ErrNotFound)
		}
		r.s.items[item.ID] = cloneItem(item)
		return func() { r.s.items[prev.ID] = prev }, nil
	})
}

func (r *itemRepo) GetByID(_ context.Context, accountID, id string) (*entity.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok || it.AccountID != accountID {
		return nil, nil
	}
	return cloneItem(it), nil
}

// GetForUpdate no bloquea: el almacén local no tiene transacciones.
func (r *itemRepo) GetForUpdate(ctx context.Context, accountID, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, accountID, id)
}

type customerRepo struct{ s *Store }

func (r *customerRepo) List(_ context.Context, accountID string) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.customers, func(v *entity.Customer) (time.Time, string) { return v.CreatedAt, v.ID })
	out := make([]*entity.Customer, 0, len(all))
	for _, c := range all {
		if c.AccountID == accountID {
			out = append(out, cloneCustomer(c))
		}
	}
	return out, nil
}

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.s.mutate(func() (func(), error) {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if _, exists := r.s.customers[c.ID]; exists {
			return nil, fmt.Errorf("cliente %s: %w", c.ID, domain.ErrDuplicate)
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now()
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = c.CreatedAt
		}
		r.s.customers[c.ID] = cloneCustomer(c)
		id := c.ID
		return func() { delete(r.s.customers, id) }, nil
	})
}

func (r *customerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.s.mutate(func() (func(), error) {
		prev, ok := r.s.customers[c.ID]
		if !ok || prev.AccountID != c.AccountID {
			return nil, fmt.Errorf("cliente %s: %w", c.ID, domain.ErrNotFound)
		}
		r.s.customers[c.ID] = cloneCustomer(c)
		return func() { r.s.customers[prev.ID] = prev }, nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, accountID, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.customers[id]
	if !ok || c.AccountID != accountID {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) List(_ context.Context, accountID string) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.sales, func(v *entity.Sale) (time.Time, string) { return v.CreatedAt, v.ID })
	out := make([]*entity.Sale, 0, len(all))
	for _, s := range all {
		if s.AccountID == accountID {
			out = append(out, cloneSale(s))
		}
	}
	return out, nil
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.s.mutate(func() (func(), error) {
		if sale.ID == "" {
			sale.ID = uuid.NewString()
		}
		if _, exists := r.s.sales[sale.ID]; exists {
			return nil, fmt.Errorf("venta %s: %w", sale.ID, domain.ErrDuplicate)
		}
		if sale.CreatedAt.IsZero() {
			sale.CreatedAt = time.Now()
		}
		r.s.sales[sale.ID] = cloneSale(sale)
		id := sale.ID
		return func() { delete(r.s.sales, id) }, nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, accountID, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	s, ok := r.s.sales[id]
	if !ok || s.AccountID != accountID {
		return nil, nil
	}
	return cloneSale(s), nil
}

type expenseRepo struct{ s *Store }

func (r *expenseRepo) List(_ context.Context, accountID string) ([]*entity.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.expenses, func(v *entity.Expense) (time.Time, string) { return v.CreatedAt, v.ID })
	out := make([]*entity.Expense, 0, len(all))
	for _, e := range all {
		if e.AccountID == accountID {
			out = append(out, cloneExpense(e))
		}
	}
	return out, nil
}

func (r *expenseRepo) Create(_ context.Context, e *entity.Expense) error {
	return r.s.mutate(func() (func(), error) {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if _, exists := r.s.expenses[e.ID]; exists {
			return nil, fmt.Errorf("gasto %s: %w", e.ID, domain.ErrDuplicate)
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		r.s.expenses[e.ID] = cloneExpense(e)
		id := e.ID
		return func() { delete(r.s.expenses, id) }, nil
	})
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) List(_ context.Context, accountID string) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := sortedValues(r.s.suppliers, func(v *entity.Supplier) (time.Time, string) { return v.CreatedAt, v.ID })
	out := make([]*entity.Supplier, 0, len(all))
	for _, sup := range all {
		if sup.AccountID == accountID {
			out = append(out, cloneSupplier(sup))
		}
	}
	return out, nil
}

func (r *supplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	return r.s.mutate(func() (func(), error) {
		if sup.ID == "" {
			sup.ID = uuid.NewString()
		}
		if _, exists := r.s.suppliers[sup.ID]; exists {
			return nil, fmt.Errorf("proveedor %s: %w", sup.ID, domain.ErrDuplicate)
		}
		if sup.CreatedAt.IsZero() {
			sup.CreatedAt = time.Now()
		}
		r.s.suppliers[sup.ID] = cloneSupplier(sup)
		id := sup.ID
		return func() { delete(r.s.suppliers, id) }, nil
	})
}
