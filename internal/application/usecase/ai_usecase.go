package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/finance"
	"github.com/jhoicas/bizflow-api/pkg/money"
)

// ErrAdvisorDisabled no hay proveedor de IA configurado.
var ErrAdvisorDisabled = errors.New("asistente IA no configurado")

const adviceTimeout = 15 * time.Second

// SummarySource entrega el resumen financiero de una cuenta (analytics.DashboardUseCase).
type SummarySource interface {
	Summary(ctx context.Context, accountID string) (finance.Summary, finance.Snapshot, error)
}

// AIUseCase responde preguntas sobre el negocio usando el resumen del dashboard como contexto.
// Aplica un timeout de 15 segundos en cada llamada al LLM.
type AIUseCase struct {
	advisor ports.AdvisorService
	source  SummarySource
	amounts *money.Formatter
}

// NewAIUseCase construye el caso de uso. advisor nil deja el asistente deshabilitado.
func NewAIUseCase(advisor ports.AdvisorService, source SummarySource, amounts *money.Formatter) *AIUseCase {
	if amounts == nil {
		amounts = money.NewFormatter(money.DefaultLocale, money.DefaultSymbol)
	}
	return &AIUseCase{advisor: advisor, source: source, amounts: amounts}
}

// Enabled indica si hay un proveedor configurado.
func (uc *AIUseCase) Enabled() bool { return uc.advisor != nil }

// Ask valida la pregunta, arma el contexto y delega al proveedor.
func (uc *AIUseCase) Ask(ctx context.Context, accountID string, req dto.AssistantRequest) (*dto.AssistantResponse, error) {
	if uc.advisor == nil {
		return nil, ErrAdvisorDisabled
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: question es obligatorio", domain.ErrInvalidInput)
	}

	summary, snap, err := uc.source.Summary(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, adviceTimeout)
	defer cancel()

	answer, err := uc.advisor.Advise(ctx, uc.BusinessSummary(summary, snap.Suppliers), question)
	if err != nil {
		return nil, fmt.Errorf("asistente IA: %w", err)
	}
	return &dto.AssistantResponse{Provider: uc.advisor.Provider(), Answer: strings.TrimSpace(answer)}, nil
}

// BusinessSummary texto plano con las cifras del resumen, una por línea, y la agenda de proveedores.
func (uc *AIUseCase) BusinessSummary(s finance.Summary, suppliers []*entity.Supplier) string {
	var b strings.Builder
	f := uc.amounts
	fmt.Fprintf(&b, "Ventas totales: %s (%d ventas, %d con saldo pendiente)\n", f.Format(s.TotalRevenue), s.SalesCount, s.PendingSales)
	fmt.Fprintf(&b, "Efectivo recibido: %s\n", f.Format(s.CashReceived))
	fmt.Fprintf(&b, "Por cobrar: %s\n", f.Format(s.TotalDue))
	fmt.Fprintf(&b, "Costo de mercadería vendida: %s\n", f.Format(s.CostOfGoodsSold))
	fmt.Fprintf(&b, "Gastos: %s\n", f.Format(s.TotalExpenses))
	fmt.Fprintf(&b, "Ganancia neta: %s\n", f.Format(s.NetProfit))

	if len(s.LowStock) > 0 {
		b.WriteString("Stock bajo:\n")
		for _, it := range s.LowStock {
			fmt.Fprintf(&b, "- %s: %d %s\n", it.Name, it.Quantity, it.Unit)
		}
	}
	if len(s.TopDebtors) > 0 {
		b.WriteString("Mayores deudores:\n")
		for _, c := range s.TopDebtors {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, f.Format(c.TotalDue))
		}
	}
	if len(s.ExpenseBreakdown) > 0 {
		b.WriteString("Gastos por categoría:\n")
		for _, c := range s.ExpenseBreakdown {
			fmt.Fprintf(&b, "- %s: %s\n", c.Category, f.Format(c.Amount))
		}
	}
	if len(suppliers) > 0 {
		b.WriteString("Proveedores:\n")
		for _, sup := range suppliers {
			fmt.Fprintf(&b, "- %s", sup.Name)
			if sup.Category != "" {
				fmt.Fprintf(&b, " (%s)", sup.Category)
			}
			if sup.Phone != "" {
				fmt.Fprintf(&b, ", tel. %s", sup.Phone)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
