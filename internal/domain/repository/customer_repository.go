package repository

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	List(ctx context.Context, accountID string) ([]*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	// GetByID devuelve nil, nil si el cliente no existe.
	GetByID(ctx context.Context, accountID, id string) (*entity.Customer, error)
}
