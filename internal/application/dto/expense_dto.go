package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// CreateExpenseRequest body para POST /api/expenses. Date vacío = hoy.
type CreateExpenseRequest struct {
	Date        string          `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Category    string          `json:"category" validate:"required,max=100"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=500"`
}

// ExpenseResponse gasto registrado.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

func ExpenseToResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{ID: e.ID, Date: e.Date, Category: e.Category, Amount: e.Amount, Description: e.Description}
}

func ExpensesToResponse(list []*entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ExpenseToResponse(e))
	}
	return out
}
