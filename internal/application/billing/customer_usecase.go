package billing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/application/validation"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// MsgPaidExceedsAmount mensaje cuando el pagado supera el total.
const MsgPaidExceedsAmount = "Paid amount cannot exceed more than the total amount."

// maxPage última página cuyo offset cabe en un int.
const maxPage = math.MaxInt / dto.CustomerPageSize

// moneyScale decimales admitidos en montos (NUMERIC(14,2)).
const moneyScale = 2

// CustomerUseCase casos de uso para clientes y sus abonos.
type CustomerUseCase struct {
	repo      repository.CustomerRepository
	tx        BalanceTxRunner
	validator *validation.CustomerValidator
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, tx BalanceTxRunner, validator *validation.CustomerValidator) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tx: tx, validator: validator}
}

// Create crea un nuevo cliente. El teléfono normalizado debe ser único y Paid <= Amount.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	fields, msg := uc.validator.Validate(validation.CustomerInput{
		Name:     in.Name,
		Phone:    in.Phone,
		Address:  in.Address,
		Platform: in.Platform,
	})
	if msg != "" {
		return nil, domain.NewValidationError(msg)
	}
	amount, err := parseMoney("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	paid, err := parseMoney("paid", in.Paid)
	if err != nil {
		return nil, err
	}
	if paid.GreaterThan(amount) {
		return nil, domain.NewValidationError(MsgPaidExceedsAmount)
	}

	existing, err := uc.repo.GetByPhone(ctx, fields.Phone)
	if err != nil {
		return nil, domain.Persistence("buscar cliente por teléfono", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      fields.Name,
		Phone:     fields.Phone,
		Address:   fields.Address,
		Platform:  fields.Platform,
		Amount:    amount,
		Paid:      paid,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, domain.Persistence("guardar cliente", err)
	}
	return toCustomerResponse(customer), nil
}

// List lista una página (base 1) de clientes, más recientes primero.
// search filtra por teléfono normalizado igual que al guardar; conteo y listado usan el mismo filtro.
func (uc *CustomerUseCase) List(ctx context.Context, page string, search string) (*dto.CustomerPage, error) {
	current := parsePage(page)
	search = strings.TrimSpace(search)

	filter := repository.CustomerFilter{PhoneContains: validation.NormalizePhone(search)}
	count, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, domain.Persistence("contar clientes", err)
	}
	filter.Limit = dto.CustomerPageSize
	filter.Offset = (current - 1) * dto.CustomerPageSize
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Persistence("listar clientes", err)
	}

	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return &dto.CustomerPage{
		Customers: out,
		Count:     count,
		Query:     search,
		Current:   current,
		Pages:     (count + dto.CustomerPageSize - 1) / dto.CustomerPageSize,
	}, nil
}

// ListAll devuelve todos los clientes sin paginar.
func (uc *CustomerUseCase) ListAll(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx, repository.CustomerFilter{})
	if err != nil {
		return nil, domain.Persistence("listar clientes", err)
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// GetByID devuelve la proyección pública de un cliente.
// Errores: ErrInvalidID, ErrNotFound o *domain.PersistenceError.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerDetailResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("obtener cliente", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CustomerDetailResponse{
		Name:     c.Name,
		Phone:    c.Phone,
		Address:  c.Address,
		Amount:   c.Amount,
		Paid:     c.Paid,
		Platform: c.Platform,
	}, nil
}

// Update reemplaza nombre, teléfono, dirección y plataforma. Los montos no se tocan.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	fields, msg := uc.validator.Validate(validation.CustomerInput{
		Name:     in.Name,
		Phone:    in.Phone,
		Address:  in.Address,
		Platform: in.Platform,
	})
	if msg != "" {
		return nil, domain.NewValidationError(msg)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("obtener cliente", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	other, err := uc.repo.GetByPhone(ctx, fields.Phone)
	if err != nil {
		return nil, domain.Persistence("buscar cliente por teléfono", err)
	}
	if other != nil && other.ID != customer.ID {
		return nil, domain.ErrDuplicate
	}

	customer.Name = fields.Name
	customer.Phone = fields.Phone
	customer.Address = fields.Address
	customer.Platform = fields.Platform
	customer.UpdatedAt = time.Now()
	if err := uc.repo.UpdateDetails(ctx, customer); err != nil {
		if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, domain.Persistence("actualizar cliente", err)
	}
	return toCustomerResponse(customer), nil
}

// UpdateBalance suma un abono al pagado del cliente con ese teléfono.
// La lectura y el incremento ocurren en la misma transacción con la fila bloqueada.
func (uc *CustomerUseCase) UpdateBalance(ctx context.Context, in dto.UpdateBalanceRequest) (*dto.CustomerResponse, error) {
	increment, err := decimal.NewFromString(strings.TrimSpace(in.Paid))
	if err != nil {
		return nil, domain.NewValidationError(`"paid" must be a number`)
	}
	if !increment.IsPositive() {
		return nil, domain.NewValidationError(`"paid" must be greater than 0`)
	}
	if !fitsMoneyScale(increment) {
		return nil, domain.NewValidationError(`"paid" must have at most 2 decimal places`)
	}
	phone := validation.NormalizePhone(in.Phone)

	var updated *entity.Customer
	err = uc.tx.RunBalance(ctx, func(repo repository.CustomerRepository) error {
		customer, err := repo.GetByPhoneForUpdate(ctx, phone)
		if err != nil {
			return domain.Persistence("buscar cliente por teléfono", err)
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if !customer.CanPay(increment) {
			return domain.ErrOverpayment
		}
		updated, err = repo.AddPayment(ctx, customer.ID, increment, time.Now())
		if err != nil {
			if errors.Is(err, domain.ErrOverpayment) {
				return domain.ErrOverpayment
			}
			return domain.Persistence("registrar abono", err)
		}
		return nil
	})
	if err != nil {
		var perr *domain.PersistenceError
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrOverpayment) || errors.As(err, &perr) {
			return nil, err
		}
		return nil, domain.Persistence("transacción de abono", err)
	}
	return toCustomerResponse(updated), nil
}

// Delete elimina un cliente. Un id inexistente o mal formado no es error.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	return domain.Persistence("eliminar cliente", uc.repo.Delete(ctx, id))
}

// parsePage convierte el parámetro de página; vacío, no numérico o < 1 queda en 1
// y lo que pase de maxPage queda en maxPage.
func parsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxPage {
		return maxPage
	}
	return n
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.NewValidationError(fmt.Sprintf("%q must be a number", field))
	}
	if d.IsNegative() {
		return decimal.Zero, domain.NewValidationError(fmt.Sprintf("%q must be greater than or equal to 0", field))
	}
	if !fitsMoneyScale(d) {
		return decimal.Zero, domain.NewValidationError(fmt.Sprintf("%q must have at most 2 decimal places", field))
	}
	return d, nil
}

func fitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(moneyScale))
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Platform:  c.Platform,
		Amount:    c.Amount,
		Paid:      c.Paid,
		Balance:   c.Balance(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
