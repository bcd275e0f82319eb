package billing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/customer"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
	"github.com/jhoicas/bizflow-api/pkg/money"
)

const (
	whatsAppBaseURL = "https://wa.me/"
	// Saludo, agradecimiento por la compra y pedido de pago del total adeudado.
	reminderTemplate = "আসসালামু আলাইকুম %s, আমাদের দোকানে কেনাকাটা করার জন্য ধন্যবাদ। আপনার মোট বকেয়া %s টাকা পরিশোধ করার অনুরোধ রইলো।"
)

// CustomerUseCase casos de uso de clientes: alta, consulta, cobros y recordatorios.
// Los saldos solo se modifican a través del BalanceLedger.
type CustomerUseCase struct {
	repo    repository.CustomerRepository
	balance *ledger.BalanceLedger
	amounts *money.Formatter
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, balance *ledger.BalanceLedger, amounts *money.Formatter) *CustomerUseCase {
	if amounts == nil {
		amounts = money.NewFormatter(money.DefaultLocale, money.DefaultSymbol)
	}
	return &CustomerUseCase{repo: repo, balance: balance, amounts: amounts.WithScale(0)}
}

// Register crea un cliente desde el formulario. Un teléfono ya registrado retorna ErrDuplicate.
func (uc *CustomerUseCase) Register(ctx context.Context, accountID string, in dto.CustomerForm) (*dto.CustomerResponse, error) {
	c, err := uc.balance.Register(ctx, uc.repo, accountID, ledger.CustomerForm{
		Name: in.Name, Phone: in.Phone, Address: in.Address, Email: in.Email,
	})
	if err != nil {
		return nil, err
	}
	resp := dto.CustomerToResponse(c)
	return &resp, nil
}

// List clientes de la cuenta. dueOnly filtra a los que tienen deuda.
func (uc *CustomerUseCase) List(ctx context.Context, accountID string, dueOnly bool) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar clientes", err)
	}
	if dueOnly {
		filtered := list[:0]
		for _, c := range list {
			if c.HasDue() {
				filtered = append(filtered, c)
			}
		}
		list = filtered
	}
	return dto.CustomersToResponse(list), nil
}

// Get un cliente por ID.
func (uc *CustomerUseCase) Get(ctx context.Context, accountID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.CustomerToResponse(c)
	return &resp, nil
}

// RecordPayment registra un cobro contra la deuda del cliente.
func (uc *CustomerUseCase) RecordPayment(ctx context.Context, accountID, id string, in dto.PaymentRequest) (*dto.CustomerResponse, error) {
	c, err := uc.balance.RecordPayment(ctx, uc.repo, accountID, id, in.Amount)
	if err != nil {
		return nil, err
	}
	resp := dto.CustomerToResponse(c)
	return &resp, nil
}

// SetReminder fija (o con fecha vacía elimina) la fecha de cobro.
func (uc *CustomerUseCase) SetReminder(ctx context.Context, accountID, id string, in dto.ReminderRequest) (*dto.CustomerResponse, error) {
	var date time.Time
	if s := strings.TrimSpace(in.Date); s != "" {
		parsed, err := time.Parse(dto.DateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
		}
		date = parsed
	}
	c, err := uc.balance.SetReminder(ctx, uc.repo, accountID, id, date)
	if err != nil {
		return nil, err
	}
	resp := dto.CustomerToResponse(c)
	return &resp, nil
}

// ReminderMessage arma el mensaje de cobro y el enlace de WhatsApp para enviarlo.
// Sin teléfono el enlace queda vacío.
func (uc *CustomerUseCase) ReminderMessage(ctx context.Context, accountID, id string) (*dto.ReminderMessageResponse, error) {
	c, err := uc.get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	msg := fmt.Sprintf(reminderTemplate, c.Name, uc.amounts.Format(c.TotalDue))
	resp := &dto.ReminderMessageResponse{CustomerID: c.ID, Phone: c.Phone, Message: msg}
	if phone := customer.Digits(c.Phone); phone != "" {
		resp.WhatsAppURL = whatsAppBaseURL + phone + "?" + url.Values{"text": {msg}}.Encode()
	}
	return resp, nil
}

func (uc *CustomerUseCase) get(ctx context.Context, accountID, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, domain.Persistence("leer cliente", err)
	}
	if c == nil {
		return nil, domain.ErrNoSuchCustomer
	}
	return c, nil
}
