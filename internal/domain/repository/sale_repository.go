package repository

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Las ventas son inmutables: no hay Update.
type SaleRepository interface {
	List(ctx context.Context, accountID string) ([]*entity.Sale, error)
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, accountID, id string) (*entity.Sale, error)
}
