package entity

import "time"

// Supplier proveedor de mercadería. No participa del libro: es agenda de compras
// y contexto para el asistente.
type Supplier struct {
	ID            string
	AccountID     string
	Name          string
	ContactPerson string
	Phone         string
	Address       string
	Category      string
	CreatedAt     time.Time
}
