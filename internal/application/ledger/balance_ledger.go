package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/customer"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// CustomerForm datos del cliente tal como llegan del formulario de venta o de alta.
type CustomerForm struct {
	Name    string
	Phone   string
	Address string
	Email   string
}

// BalanceLedger mantiene TotalSpent y TotalDue de cada cliente.
// Ninguna operación es idempotente: el llamador debe evitar envíos duplicados.
type BalanceLedger struct {
	policies Policies
	now      func() time.Time
	newID    func() string
}

// NewBalanceLedger construye el libro de saldos. Campos vacíos de p usan DefaultPolicies.
func NewBalanceLedger(p Policies) *BalanceLedger {
	def := DefaultPolicies()
	if p.Identity == nil {
		p.Identity = def.Identity
	}
	if p.Spent == "" {
		p.Spent = def.Spent
	}
	if p.Overpayment == "" {
		p.Overpayment = def.Overpayment
	}
	return &BalanceLedger{policies: p, now: time.Now, newID: uuid.NewString}
}

// Policies devuelve las políticas efectivas.
func (l *BalanceLedger) Policies() Policies { return l.policies }

// FindByPhone busca al cliente cuyo teléfono coincide según la política de identidad.
// Con varias coincidencias gana el más antiguo. Devuelve nil, nil si no hay ninguno.
func (l *BalanceLedger) FindByPhone(
	ctx context.Context,
	customers repository.CustomerRepository,
	accountID, phone string,
) (*entity.Customer, error) {
	if l.policies.Identity.Key(phone) == "" {
		return nil, nil
	}
	list, err := customers.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar clientes", err)
	}
	var match *entity.Customer
	// List viene por creación descendente: la última coincidencia es la más antigua.
	for _, c := range list {
		if customer.Same(l.policies.Identity, c.Phone, phone) {
			match = c
		}
	}
	return match, nil
}

// ChargeOrCreate carga una venta al cliente identificado por el teléfono del formulario.
// Existente: TotalDue += due, TotalSpent += total. Nuevo: se crea con esos mismos valores.
func (l *BalanceLedger) ChargeOrCreate(
	ctx context.Context,
	customers repository.CustomerRepository,
	accountID string,
	form CustomerForm,
	totalAmount, paidAmount decimal.Decimal,
) (*entity.Customer, error) {
	c, _, err := l.chargeOrCreate(ctx, customers, accountID, form, totalAmount, paidAmount)
	return c, err
}

// chargeOrCreate devuelve además el estado previo del cliente (nil si se creó) para poder compensar.
func (l *BalanceLedger) chargeOrCreate(
	ctx context.Context,
	customers repository.CustomerRepository,
	accountID string,
	form CustomerForm,
	totalAmount, paidAmount decimal.Decimal,
) (*entity.Customer, *entity.Customer, error) {
	if strings.TrimSpace(form.Name) == "" || totalAmount.IsNegative() || paidAmount.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}
	totalAmount, paidAmount = RoundMoney(totalAmount), RoundMoney(paidAmount)
	due := DueAmount(totalAmount, paidAmount)
	now := l.now()

	existing, err := l.FindByPhone(ctx, customers, accountID, form.Phone)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		previous := *existing
		existing.TotalDue = existing.TotalDue.Add(due)
		existing.TotalSpent = existing.TotalSpent.Add(totalAmount)
		existing.UpdatedAt = now
		if err := customers.Update(ctx, existing); err != nil {
			return nil, nil, domain.Persistence("cargar venta al cliente", err)
		}
		return existing, &previous, nil
	}

	created := &entity.Customer{
		ID:         l.newID(),
		AccountID:  accountID,
		Name:       strings.TrimSpace(form.Name),
		Phone:      strings.TrimSpace(form.Phone),
		Address:    strings.TrimSpace(form.Address),
		Email:      strings.TrimSpace(form.Email),
		TotalSpent: totalAmount,
		TotalDue:   due,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := customers.Create(ctx, created); err != nil {
		return nil, nil, domain.Persistence("crear cliente", err)
	}
	return created, nil, nil
}

// revertCharge es la acción compensatoria de chargeOrCreate.
// Sin primitiva de borrado, un cliente recién creado queda con saldos en cero.
func (l *BalanceLedger) revertCharge(
	ctx context.Context,
	customers repository.CustomerRepository,
	charged, previous *entity.Customer,
) error {
	restored := *charged
	if previous != nil {
		restored.TotalDue = previous.TotalDue
		restored.TotalSpent = previous.TotalSpent
	} else {
		restored.TotalDue = decimal.Zero
		restored.TotalSpent = decimal.Zero
	}
	restored.UpdatedAt = l.now()
	if err := customers.Update(ctx, &restored); err != nil {
		return domain.Persistence("revertir saldo del cliente", err)
	}
	return nil
}

// RecordPayment descuenta amount de la deuda: newDue = max(0, TotalDue - amount).
// Con SpentCashReceived el pago también se suma a TotalSpent. amount se redondea a centavos.
func (l *BalanceLedger) RecordPayment(
	ctx context.Context,
	customers repository.CustomerRepository,
	accountID, customerID string,
	amount decimal.Decimal,
) (*entity.Customer, error) {
	amount = RoundMoney(amount)
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	c, err := l.get(ctx, customers, accountID, customerID)
	if err != nil {
		return nil, err
	}
	if l.policies.Overpayment == OverpaymentReject && amount.GreaterThan(c.TotalDue) {
		return nil, domain.ErrInvalidInput
	}
	c.TotalDue = DueAmount(c.TotalDue, amount)
	if l.policies.Spent == SpentCashReceived {
		c.TotalSpent = c.TotalSpent.Add(amount)
	}
	c.UpdatedAt = l.now()
	if err := customers.Update(ctx, c); err != nil {
		return nil, domain.Persistence("registrar pago", err)
	}
	return c, nil
}

// SetReminder fija la fecha de recordatorio de cobro. Una fecha cero la elimina.
func (l *BalanceLedger) SetReminder(
	ctx context.Context,
	customers repository.CustomerRepository,
	accountID, customerID string,
	date time.Time,
) (*entity.Customer, error) {
	c, err := l.get(ctx, customers, accountID, customerID)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		c.ReminderDate = nil
	} else {
		d := date
		c.ReminderDate = &d
	}
	c.UpdatedAt = l.now()
	if err := customers.Update(ctx, c); err != nil {
		return nil, domain.Persistence("guardar recordatorio", err)
	}
	return c, nil
}

// Register alta explícita desde el formulario de clientes (upsert por clave de identidad).
// Si ya existe un cliente con la misma clave retorna ErrDuplicate.
func (l *BalanceLedger) Register(
	ctx context.Context,
	customers repository.CustomerRepository,
	accountID string,
	form CustomerForm,
) (*entity.Customer, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := l.FindByPhone(ctx, customers, accountID, form.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := l.now()
	c := &entity.Customer{
		ID:         l.newID(),
		AccountID:  accountID,
		Name:       strings.TrimSpace(form.Name),
		Phone:      strings.TrimSpace(form.Phone),
		Address:    strings.TrimSpace(form.Address),
		Email:      strings.TrimSpace(form.Email),
		TotalSpent: decimal.Zero,
		TotalDue:   decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := customers.Create(ctx, c); err != nil {
		return nil, domain.Persistence("crear cliente", err)
	}
	return c, nil
}

func (l *BalanceLedger) get(
	ctx context.Context,
	customers repository.CustomerRepository,
	accountID, customerID string,
) (*entity.Customer, error) {
	if customerID == "" {
		return nil, domain.ErrNoSuchCustomer
	}
	c, err := customers.GetByID(ctx, accountID, customerID)
	if err != nil {
		return nil, domain.Persistence("leer cliente", err)
	}
	if c == nil {
		return nil, domain.ErrNoSuchCustomer
	}
	return c, nil
}
