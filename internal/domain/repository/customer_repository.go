package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerFilter filtro compartido por listado y conteo.
// PhoneContains se compara como subcadena literal sin distinguir mayúsculas.
type CustomerFilter struct {
	PhoneContains string
	Limit         int // 0 = sin límite
	Offset        int
}

// CustomerRepository define el puerto de persistencia para Customer.
// GetByID y GetByPhone devuelven (nil, nil) cuando no existe el registro.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	// GetByPhoneForUpdate igual que GetByPhone pero bloquea la fila hasta el fin de la tx.
	GetByPhoneForUpdate(ctx context.Context, phone string) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, error)
	Count(ctx context.Context, filter CustomerFilter) (int, error)
	UpdateDetails(ctx context.Context, customer *entity.Customer) error
	AddPayment(ctx context.Context, id string, increment decimal.Decimal, at time.Time) (*entity.Customer, error)
	Delete(ctx context.Context, id string) error
}
