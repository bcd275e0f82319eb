package repository

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	List(ctx context.Context, accountID string) ([]*entity.Supplier, error)
	Create(ctx context.Context, supplier *entity.Supplier) error
}
