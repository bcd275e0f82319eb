package ledger

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn retorna error se hace Rollback. Solo lo implementan almacenes transaccionales;
// sin TxRunner el procesador de ventas usa un saga con acciones compensatorias.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(repos repository.Repositories) error) error
}
