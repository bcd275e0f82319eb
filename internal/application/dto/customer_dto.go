package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// CustomerForm datos del cliente (alta explícita o cabecera de venta).
type CustomerForm struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"max=40"`
	Address string `json:"address" validate:"max=300"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// PaymentRequest body para POST /api/customers/:id/payments.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ReminderRequest body para PUT /api/customers/:id/reminder. Date vacío elimina el recordatorio.
type ReminderRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// CustomerResponse cliente con sus saldos.
type CustomerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	Email        string          `json:"email,omitempty"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	TotalDue     decimal.Decimal `json:"total_due"`
	ReminderDate *string         `json:"reminder_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ReminderMessageResponse texto de recordatorio de cobro listo para enviar.
type ReminderMessageResponse struct {
	CustomerID  string `json:"customer_id"`
	Phone       string `json:"phone,omitempty"`
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

// CustomerToResponse mapea la entidad al DTO.
func CustomerToResponse(c *entity.Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Address:    c.Address,
		Email:      c.Email,
		TotalSpent: c.TotalSpent,
		TotalDue:   c.TotalDue,
		CreatedAt:  c.CreatedAt,
	}
	if c.ReminderDate != nil {
		s := c.ReminderDate.Format(DateLayout)
		resp.ReminderDate = &s
	}
	return resp
}

// CustomersToResponse mapea una lista.
func CustomersToResponse(list []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CustomerToResponse(c))
	}
	return out
}
