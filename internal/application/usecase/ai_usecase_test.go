package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/finance"
	"github.com/jhoicas/bizflow-api/pkg/money"
)

type stubSource struct {
	summary   finance.Summary
	suppliers []*entity.Supplier
	err       error
}

func (s stubSource) Summary(context.Context, string) (finance.Summary, finance.Snapshot, error) {
	return s.summary, finance.Snapshot{Suppliers: s.suppliers}, s.err
}

type stubAdvisor struct {
	gotSummary, gotQuestion string
	deadline                bool
	err                     error
}

func (s *stubAdvisor) Provider() string { return "stub" }

func (s *stubAdvisor) Advise(ctx context.Context, summary, question string) (string, error) {
	s.gotSummary, s.gotQuestion = summary, question
	_, s.deadline = ctx.Deadline()
	return "  Cobre a Rahim primero.  ", s.err
}

func sampleSummary() finance.Summary {
	return finance.Summary{
		TotalRevenue: decimal.NewFromInt(300),
		TotalDue:     decimal.NewFromInt(100),
		CashReceived: decimal.NewFromInt(200),
		NetProfit:    decimal.NewFromInt(70),
		SalesCount:   1,
		PendingSales: 1,
		LowStock:     []*entity.InventoryItem{{Name: "Arroz", Quantity: 2, Unit: "kg"}},
		TopDebtors:   []*entity.Customer{{Name: "Rahim", TotalDue: decimal.NewFromInt(100)}},
	}
}

func TestAIUseCase_Ask(t *testing.T) {
	adv := &stubAdvisor{}
	src := stubSource{
		summary:   sampleSummary(),
		suppliers: []*entity.Supplier{{Name: "Karim Traders", Category: "Arroz", Phone: "01811000000"}},
	}
	uc := NewAIUseCase(adv, src, money.NewFormatter("en", "$"))
	require.True(t, uc.Enabled())

	resp, err := uc.Ask(context.Background(), "acc-1", dto.AssistantRequest{Question: " ¿A quién cobro? "})
	require.NoError(t, err)
	assert.Equal(t, "stub", resp.Provider)
	assert.Equal(t, "Cobre a Rahim primero.", resp.Answer)
	assert.Equal(t, "¿A quién cobro?", adv.gotQuestion)
	assert.True(t, adv.deadline, "la llamada lleva timeout")
	assert.Contains(t, adv.gotSummary, "Ventas totales: $300.00")
	assert.Contains(t, adv.gotSummary, "- Arroz: 2 kg")
	assert.Contains(t, adv.gotSummary, "- Rahim: $100.00")
	assert.Contains(t, adv.gotSummary, "Proveedores:\n- Karim Traders (Arroz), tel. 01811000000")
}

func TestAIUseCase_Errores(t *testing.T) {
	ctx := context.Background()

	_, err := NewAIUseCase(nil, stubSource{}, nil).Ask(ctx, "acc-1", dto.AssistantRequest{Question: "x"})
	assert.ErrorIs(t, err, ErrAdvisorDisabled)

	_, err = NewAIUseCase(&stubAdvisor{}, stubSource{}, nil).Ask(ctx, "acc-1", dto.AssistantRequest{Question: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewAIUseCase(&stubAdvisor{}, stubSource{err: domain.ErrPersistence}, nil).Ask(ctx, "acc-1", dto.AssistantRequest{Question: "x"})
	assert.ErrorIs(t, err, domain.ErrPersistence)

	boom := errors.New("503")
	_, err = NewAIUseCase(&stubAdvisor{err: boom}, stubSource{}, nil).Ask(ctx, "acc-1", dto.AssistantRequest{Question: "x"})
	assert.ErrorIs(t, err, boom)
}
