package repository

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia para Expense.
type ExpenseRepository interface {
	List(ctx context.Context, accountID string) ([]*entity.Expense, error)
	Create(ctx context.Context, expense *entity.Expense) error
}
