package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bizflow-api/internal/domain/entity"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	Customer   CustomerForm      `json:"customer" validate:"required"`
	Items      []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
	PaidAmount decimal.Decimal   `json:"paid_amount"`
}

// SaleLineRequest línea del carrito. Sin unit_price se usa el precio de venta del artículo.
type SaleLineRequest struct {
	ItemID    string           `json:"item_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gt=0,max=1000000"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// SaleResponse venta registrada.
type SaleResponse struct {
	ID              string             `json:"id"`
	Date            time.Time          `json:"date"`
	CustomerID      string             `json:"customer_id,omitempty"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone,omitempty"`
	CustomerAddress string             `json:"customer_address,omitempty"`
	Items           []SaleLineResponse `json:"items"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	DueAmount       decimal.Decimal    `json:"due_amount"`
	Status          string             `json:"status"`
}

// SaleLineResponse línea de la venta.
type SaleLineResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      string          `json:"unit,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleToResponse mapea la entidad al DTO.
func SaleToResponse(s *entity.Sale) SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Items))
	for _, l := range s.Items {
		lines = append(lines, SaleLineResponse{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Unit:      l.Unit,
			Subtotal:  l.Subtotal(),
		})
	}
	return SaleResponse{
		ID:              s.ID,
		Date:            s.Date,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		CustomerPhone:   s.CustomerPhone,
		CustomerAddress: s.CustomerAddress,
		Items:           lines,
		TotalAmount:     s.TotalAmount,
		PaidAmount:      s.PaidAmount,
		DueAmount:       s.DueAmount,
		Status:          s.Status,
	}
}

// SalesToResponse mapea una lista.
func SalesToResponse(list []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, SaleToResponse(s))
	}
	return out
}
