package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// ExpenseUseCase registro de gastos del negocio.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewExpenseUseCase(repo repository.ExpenseRepository, log zerolog.Logger) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, log: log, now: time.Now}
}

// Create registra un gasto. Amount > 0 y categoría obligatoria; sin fecha se usa hoy.
func (uc *ExpenseUseCase) Create(ctx context.Context, accountID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" || !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	date := now
	if s := strings.TrimSpace(in.Date); s != "" {
		parsed, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
		}
		date = parsed
	}
	e := &entity.Expense{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Date:        date,
		Category:    category,
		Amount:      in.Amount.Round(2),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, domain.Persistence("guardar gasto", err)
	}
	uc.log.Info().Str("account_id", accountID).Str("category", category).Str("amount", e.Amount.String()).Msg("gasto registrado")
	resp := dto.ExpenseToResponse(e)
	return &resp, nil
}

// List gastos de la cuenta, más recientes primero.
func (uc *ExpenseUseCase) List(ctx context.Context, accountID string) ([]dto.ExpenseResponse, error) {
	list, err := uc.repo.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar gastos", err)
	}
	return dto.ExpensesToResponse(list), nil
}
