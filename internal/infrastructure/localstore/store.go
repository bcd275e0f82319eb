// Package localstore implementa los repositorios en memoria con persistencia opcional
// en un archivo JSON. No tiene transacciones: las ventas sobre este almacén corren como saga.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// Store guarda las colecciones de todas las cuentas.
type Store struct {
	mu        sync.RWMutex
	path      string
	items     map[string]*entity.InventoryItem
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
	expenses  map[string]*entity.Expense
	suppliers map[string]*entity.Supplier
}

// fileState formato del archivo en disco.
type fileState struct {
	Items     []*entity.InventoryItem `json:"items"`
	Customers []*entity.Customer      `json:"customers"`
	Sales     []*entity.Sale          `json:"sales"`
	Expenses  []*entity.Expense       `json:"expenses"`
	Suppliers []*entity.Supplier      `json:"suppliers,omitempty"`
}

// New crea un almacén solo en memoria.
func New() *Store {
	return &Store{
		items:     make(map[string]*entity.InventoryItem),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.Sale),
		expenses:  make(map[string]*entity.Expense),
		suppliers: make(map[string]*entity.Supplier),
	}
}

// Open carga el almacén desde path (si existe) y guarda ahí cada cambio.
func Open(path string) (*Store, error) {
	s := New()
	s.path = path
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer almacén local: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	var st fileState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decodificar almacén local: %w", err)
	}
	for _, it := range st.Items {
		s.items[it.ID] = it
	}
	for _, c := range st.Customers {
		s.customers[c.ID] = c
	}
	for _, sale := range st.Sales {
		s.sales[sale.ID] = sale
	}
	for _, e := range st.Expenses {
		s.expenses[e.ID] = e
	}
	for _, sup := range st.Suppliers {
		s.suppliers[sup.ID] = sup
	}
	return s, nil
}

// Repositories devuelve el juego de repositorios respaldado por este almacén.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Items:     &itemRepo{s: s},
		Customers: &customerRepo{s: s},
		Sales:     &saleRepo{s: s},
		Expenses:  &expenseRepo{s: s},
		Suppliers: &supplierRepo{s: s},
	}
}

// mutate aplica fn bajo el lock de escritura y persiste. Si el archivo no se puede escribir, deshace el cambio.
func (s *Store) mutate(fn func() (undo func(), err error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	undo, err := fn()
	if err != nil {
		return err
	}
	if err := s.flush(); err != nil {
		undo()
		return err
	}
	return nil
}

// flush escribe el archivo completo (temporal + rename). Requiere el lock tomado.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}
	st := fileState{
		Items:     sortedValues(s.items, func(v *entity.InventoryItem) (time.Time, string) { return v.CreatedAt, v.ID }),
		Customers: sortedValues(s.customers, func(v *entity.Customer) (time.Time, string) { return v.CreatedAt, v.ID }),
		Sales:     sortedValues(s.sales, func(v *entity.Sale) (time.Time, string) { return v.CreatedAt, v.ID }),
		Expenses:  sortedValues(s.expenses, func(v *entity.Expense) (time.Time, string) { return v.CreatedAt, v.ID }),
		Suppliers: sortedValues(s.suppliers, func(v *entity.Supplier) (time.Time, string) { return v.CreatedAt, v.ID }),
	}
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar almacén local: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("crear directorio del almacén: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("escribir almacén local: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("reemplazar almacén local: %w", err)
	}
	return nil
}

// sortedValues ordena por creación descendente; a igual fecha, ID descendente.
func sortedValues[T any](m map[string]T, key func(T) (time.Time, string)) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, idi := key(out[i])
		tj, idj := key(out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi > idj
	})
	return out
}

func cloneItem(it *entity.InventoryItem) *entity.InventoryItem {
	c := *it
	return &c
}

func cloneCustomer(cu *entity.Customer) *entity.Customer {
	c := *cu
	if cu.ReminderDate != nil {
		d := *cu.ReminderDate
		c.ReminderDate = &d
	}
	return &c
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Items = append([]entity.SaleLine(nil), s.Items...)
	return &c
}

func cloneExpense(e *entity.Expense) *entity.Expense {
	c := *e
	return &c
}

func cloneSupplier(sup *entity.Supplier) *entity.Supplier {
	c := *sup
	return &c
}
