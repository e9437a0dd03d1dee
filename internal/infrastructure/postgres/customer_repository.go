package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, phone, address, platform, amount, paid, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.Phone, customer.Address, customer.Platform,
		customer.Amount, customer.Paid, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByPhone obtiene un cliente por teléfono exacto.
func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by phone: %w", err)
	}
	return c, nil
}

// GetByPhoneForUpdate obtiene el cliente y bloquea la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *CustomerRepo) GetByPhoneForUpdate(ctx context.Context, phone string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1 FOR UPDATE`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer for update: %w", err)
	}
	return c, nil
}

// List lista clientes filtrados por teléfono, más recientes primero. Limit 0 = todos.
func (r *CustomerRepo) List(ctx context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ($1 = '' OR strpos(lower(phone), lower($1)) > 0)
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($2::int, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, filter.PhoneContains, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count cuenta clientes con el mismo predicado que List.
func (r *CustomerRepo) Count(ctx context.Context, filter repository.CustomerFilter) (int, error) {
	query := `
		SELECT count(*) FROM customers
		WHERE ($1 = '' OR strpos(lower(phone), lower($1)) > 0)`
	var n int
	if err := r.q.QueryRow(ctx, query, filter.PhoneContains).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// UpdateDetails actualiza nombre, teléfono, dirección y plataforma.
func (r *CustomerRepo) UpdateDetails(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, phone = $3, address = $4, platform = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		customer.ID, customer.Name, customer.Phone, customer.Address, customer.Platform, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddPayment suma increment a paid de forma condicional (paid + increment <= amount).
func (r *CustomerRepo) AddPayment(ctx context.Context, id string, increment decimal.Decimal, at time.Time) (*entity.Customer, error) {
	query := `
		UPDATE customers SET paid = paid + $2, updated_at = $3
		WHERE id = $1 AND paid + $2 <= amount
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id, increment, at))
	if err == nil {
		return c, nil
	}
	if isCheckViolation(err) {
		return nil, domain.ErrOverpayment
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("add payment: %w", err)
	}
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrOverpayment
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Address, &c.Platform,
		&c.Amount, &c.Paid, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
