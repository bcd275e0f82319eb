package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/customer"
)

func TestChargeOrCreate_NuevoYExistente(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	bl := ledger.NewBalanceLedger(ledger.DefaultPolicies())
	form := ledger.CustomerForm{Name: "Rahim", Phone: "01711000000", Address: "Dhaka"}

	c, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, form, d("300"), d("200"))
	require.NoError(t, err)
	requireDec(t, "100", c.TotalDue, "due inicial")
	requireDec(t, "300", c.TotalSpent, "spent inicial")

	again, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, form, d("50"), d("0"))
	require.NoError(t, err)
	assert.Equal(t, c.ID, again.ID)
	requireDec(t, "150", again.TotalDue, "due acumulado")
	requireDec(t, "350", again.TotalSpent, "spent acumulado")

	assert.Len(t, customers(t, repos), 1)
}

func TestChargeOrCreate_TelefonoVacioNuncaCoincide(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	bl := ledger.NewBalanceLedger(ledger.DefaultPolicies())
	form := ledger.CustomerForm{Name: "Sin teléfono", Phone: "  "}

	_, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, form, d("10"), d("10"))
	require.NoError(t, err)
	_, err = bl.ChargeOrCreate(ctx, repos.Customers, acc, form, d("10"), d("10"))
	require.NoError(t, err)

	assert.Len(t, customers(t, repos), 2)
}

func TestChargeOrCreate_PoliticaDigitos(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	p := ledger.DefaultPolicies()
	p.Identity = customer.DigitsKey{}
	bl := ledger.NewBalanceLedger(p)

	_, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Karim", Phone: "+880 1711-000000"}, d("10"), d("0"))
	require.NoError(t, err)
	c, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Karim", Phone: "8801711000000"}, d("5"), d("0"))
	require.NoError(t, err)

	assert.Len(t, customers(t, repos), 1)
	requireDec(t, "15", c.TotalDue, "due")
}

func TestChargeOrCreate_NombreVacio(t *testing.T) {
	repos := newRepos(t)
	_, err := ledger.NewBalanceLedger(ledger.DefaultPolicies()).
		ChargeOrCreate(context.Background(), repos.Customers, acc, ledger.CustomerForm{Phone: "1"}, d("1"), d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	bl := ledger.NewBalanceLedger(ledger.DefaultPolicies())
	c, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Rahim", Phone: "1"}, d("300"), d("200"))
	require.NoError(t, err)

	paid, err := bl.RecordPayment(ctx, repos.Customers, acc, c.ID, d("40"))
	require.NoError(t, err)
	requireDec(t, "60", paid.TotalDue, "pago parcial")
	requireDec(t, "300", paid.TotalSpent, "goods_value no toca spent")

	paid, err = bl.RecordPayment(ctx, repos.Customers, acc, c.ID, d("500"))
	require.NoError(t, err)
	requireDec(t, "0", paid.TotalDue, "sobrepago deja la deuda en cero")

	_, err = bl.RecordPayment(ctx, repos.Customers, acc, c.ID, d("0"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = bl.RecordPayment(ctx, repos.Customers, acc, "no-existe", d("1"))
	assert.ErrorIs(t, err, domain.ErrNoSuchCustomer)
}

func TestRecordPayment_CashReceived(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	p := ledger.DefaultPolicies()
	p.Spent = ledger.SpentCashReceived
	bl := ledger.NewBalanceLedger(p)
	c, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Rahim", Phone: "1"}, d("300"), d("200"))
	require.NoError(t, err)

	paid, err := bl.RecordPayment(ctx, repos.Customers, acc, c.ID, d("100"))
	require.NoError(t, err)
	requireDec(t, "0", paid.TotalDue, "due")
	requireDec(t, "400", paid.TotalSpent, "cash_received suma el pago")
}

func TestRecordPayment_RechazaSobrepago(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	p := ledger.DefaultPolicies()
	p.Overpayment = ledger.OverpaymentReject
	bl := ledger.NewBalanceLedger(p)
	c, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Rahim", Phone: "1"}, d("100"), d("0"))
	require.NoError(t, err)

	_, err = bl.RecordPayment(ctx, repos.Customers, acc, c.ID, d("101"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := repos.Customers.GetByID(ctx, acc, c.ID)
	require.NoError(t, err)
	requireDec(t, "100", got.TotalDue, "sin cambios")
}

func TestSetReminder(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	bl := ledger.NewBalanceLedger(ledger.DefaultPolicies())
	c, err := bl.Register(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Rahim", Phone: "1"})
	require.NoError(t, err)

	when := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	got, err := bl.SetReminder(ctx, repos.Customers, acc, c.ID, when)
	require.NoError(t, err)
	require.NotNil(t, got.ReminderDate)
	assert.True(t, when.Equal(*got.ReminderDate))

	got, err = bl.SetReminder(ctx, repos.Customers, acc, c.ID, time.Time{})
	require.NoError(t, err)
	assert.Nil(t, got.ReminderDate)

	_, err = bl.SetReminder(ctx, repos.Customers, acc, "x", when)
	assert.ErrorIs(t, err, domain.ErrNoSuchCustomer)
}

func TestRegister_Duplicado(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	bl := ledger.NewBalanceLedger(ledger.DefaultPolicies())

	c, err := bl.Register(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Rahim", Phone: "017"})
	require.NoError(t, err)
	assert.True(t, c.TotalDue.IsZero())

	_, err = bl.Register(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Otro", Phone: " 017 "})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = bl.Register(ctx, repos.Customers, acc, ledger.CustomerForm{Phone: "018"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordPayment_RedondeaACentavos(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	bl := ledger.NewBalanceLedger(ledger.DefaultPolicies())
	c, err := bl.ChargeOrCreate(ctx, repos.Customers, acc, ledger.CustomerForm{Name: "Karim", Phone: "2"}, d("10"), d("0"))
	require.NoError(t, err)

	paid, err := bl.RecordPayment(ctx, repos.Customers, acc, c.ID, d("3.335"))
	require.NoError(t, err)
	requireDec(t, "6.66", paid.TotalDue, "10 - 3.34")

	_, err = bl.RecordPayment(ctx, repos.Customers, acc, c.ID, d("0.004"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "menos de un centavo")
}
