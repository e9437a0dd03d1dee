package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación en memoria de CustomerRepository (modo dev y tests).
// Devuelve copias; los llamadores nunca comparten memoria con el mapa interno.
type CustomerRepo struct {
	mu   sync.RWMutex
	data map[string]entity.Customer
}

// NewCustomerRepository construye un repo vacío.
func NewCustomerRepository() *CustomerRepo {
	return &CustomerRepo{data: make(map[string]entity.Customer)}
}

// Create persiste un nuevo cliente. Un teléfono repetido devuelve domain.ErrDuplicate.
func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.data {
		if c.Phone == customer.Phone {
			return domain.ErrDuplicate
		}
	}
	r.data[customer.ID] = *customer
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.data[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetByPhone obtiene un cliente por teléfono exacto.
func (r *CustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.data {
		if c.Phone == phone {
			return &c, nil
		}
	}
	return nil, nil
}

// GetByPhoneForUpdate igual que GetByPhone; el bloqueo lo aporta TxRunner.
func (r *CustomerRepo) GetByPhoneForUpdate(ctx context.Context, phone string) (*entity.Customer, error) {
	return r.GetByPhone(ctx, phone)
}

// List lista clientes filtrados, ordenados por created_at descendente.
func (r *CustomerRepo) List(_ context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	r.mu.RLock()
	matched := r.match(filter)
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*entity.Customer{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Count cuenta clientes con el mismo filtro que List (ignora Limit y Offset).
func (r *CustomerRepo) Count(_ context.Context, filter repository.CustomerFilter) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.match(filter)), nil
}

// UpdateDetails reemplaza nombre, teléfono, dirección y plataforma.
func (r *CustomerRepo) UpdateDetails(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[customer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	for id, other := range r.data {
		if id != customer.ID && other.Phone == customer.Phone {
			return domain.ErrDuplicate
		}
	}
	c.Name = customer.Name
	c.Phone = customer.Phone
	c.Address = customer.Address
	c.Platform = customer.Platform
	c.UpdatedAt = customer.UpdatedAt
	r.data[c.ID] = c
	return nil
}

// AddPayment incrementa Paid si el resultado no supera Amount.
func (r *CustomerRepo) AddPayment(_ context.Context, id string, increment decimal.Decimal, at time.Time) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.data[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !c.CanPay(increment) {
		return nil, domain.ErrOverpayment
	}
	c.Paid = c.Paid.Add(increment)
	c.UpdatedAt = at
	r.data[id] = c
	return &c, nil
}

// Delete elimina un cliente por ID; no falla si no existe.
func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}

// match debe llamarse con r.mu tomado.
func (r *CustomerRepo) match(filter repository.CustomerFilter) []*entity.Customer {
	needle := strings.ToLower(filter.PhoneContains)
	out := make([]*entity.Customer, 0, len(r.data))
	for _, c := range r.data {
		if needle != "" && !strings.Contains(strings.ToLower(c.Phone), needle) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	return out
}
