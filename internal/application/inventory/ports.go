package inventory

import (
	"context"

	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// runner ejecuta fn en la transacción del TxRunner o, sin él, directo sobre repos
// con el libro de stock tomado.
type runner struct {
	repos repository.Repositories
	tx    ledger.TxRunner
	stock *ledger.StockLedger
}

func (r runner) run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if r.tx != nil {
		return r.tx.RunLedger(ctx, fn)
	}
	return r.stock.Exclusive(func() error { return fn(r.repos) })
}
