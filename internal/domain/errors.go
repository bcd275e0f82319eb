package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNoSuchCustomer    = errors.New("cliente no encontrado")
	ErrPersistence       = errors.New("no se pudo guardar")
)

// InsufficientStockError indica qué ítem no alcanza para la venta.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solicitado %d, disponible %d", e.ItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// InsufficientStock construye el error tipado para itemID.
func InsufficientStock(itemID string, requested, available int) error {
	return &InsufficientStockError{ItemID: itemID, Requested: requested, Available: available}
}

// PersistenceError envuelve una falla del colaborador de almacenamiento.
// errors.Is(err, ErrPersistence) es verdadero y Unwrap expone la causa original.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence envuelve err como PersistenceError salvo que ya sea un error de dominio conocido.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsKnown indica si err pertenece a la taxonomía de dominio.
func IsKnown(err error) bool {
	for _, known := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrUnauthorized,
		ErrInsufficientStock, ErrNoSuchCustomer, ErrPersistence,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
