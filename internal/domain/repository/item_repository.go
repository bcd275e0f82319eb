package repository

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para InventoryItem.
// Usado dentro de transacciones (o del saga) para garantizar consistencia.
type ItemRepository interface {
	// List devuelve los artículos de la cuenta ordenados por creación descendente.
	List(ctx context.Context, accountID string) ([]*entity.InventoryItem, error)
	Create(ctx context.Context, item *entity.InventoryItem) error
	Update(ctx context.Context, item *entity.InventoryItem) error
	// GetByID devuelve nil, nil si el artículo no existe.
	GetByID(ctx context.Context, accountID, id string) (*entity.InventoryItem, error)
	// GetForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE) cuando el almacén lo soporta.
	GetForUpdate(ctx context.Context, accountID, id string) (*entity.InventoryItem, error)
}
