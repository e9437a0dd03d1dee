package billing

import (
	"context"

	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// BalanceTxRunner ejecuta una función dentro de una transacción con el repo de clientes atado a ella.
// Dos abonos concurrentes sobre el mismo cliente quedan serializados.
type BalanceTxRunner interface {
	RunBalance(ctx context.Context, fn func(customerRepo repository.CustomerRepository) error) error
}
