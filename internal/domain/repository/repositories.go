package repository

// Repositories agrupa los repositorios de las colecciones de una cuenta.
// Los adaptadores de Postgres entregan un juego atado a la transacción en curso;
// el almacén local entrega siempre el mismo juego.
type Repositories struct {
	Items     ItemRepository
	Customers CustomerRepository
	Sales     SaleRepository
	Expenses  ExpenseRepository
	Suppliers SupplierRepository
}
