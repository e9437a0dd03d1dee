package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Clientes-api/internal/application/billing"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ billing.BalanceTxRunner = (*TxRunner)(nil)

// TxRunner serializa las operaciones de saldo sobre un CustomerRepo en memoria.
// No hay rollback: fn debe fallar antes de escribir.
type TxRunner struct {
	mu   sync.Mutex
	repo *CustomerRepo
}

// NewTxRunner construye el runner sobre repo.
func NewTxRunner(repo *CustomerRepo) *TxRunner {
	return &TxRunner{repo: repo}
}

// RunBalance ejecuta fn con el lock de saldos tomado.
func (r *TxRunner) RunBalance(ctx context.Context, fn func(customerRepo repository.CustomerRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.repo)
}
