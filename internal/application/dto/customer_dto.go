package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerPageSize tamaño fijo de página del listado.
const CustomerPageSize = 30

// CreateCustomerRequest formulario POST /customers. Amount y Paid llegan crudos.
type CreateCustomerRequest struct {
	Name     string `json:"name" form:"name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Amount   string `json:"amount" form:"amount"`
	Paid     string `json:"paid" form:"paid"`
	Platform string `json:"platform" form:"platform"`
}

// UpdateCustomerRequest formulario PUT /customers/:id (sin montos).
type UpdateCustomerRequest struct {
	Name     string `json:"name" form:"name"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Platform string `json:"platform" form:"platform"`
}

// UpdateBalanceRequest formulario POST /customers/balance.
type UpdateBalanceRequest struct {
	Phone string `json:"phone" form:"phone"`
	Paid  string `json:"paid" form:"paid"`
}

// CustomerResponse cliente completo (listados y GET /api/customers).
type CustomerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	Platform  string          `json:"platform"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CustomerDetailResponse proyección de GET /api/customers/:id.
type CustomerDetailResponse struct {
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	Address  string          `json:"address"`
	Amount   decimal.Decimal `json:"amount"`
	Paid     decimal.Decimal `json:"paid"`
	Platform string          `json:"platform"`
}

// CustomerPage resultado del listado paginado con búsqueda.
type CustomerPage struct {
	Customers []*CustomerResponse `json:"customers"`
	Count     int                 `json:"count"`
	Query     string              `json:"query,omitempty"`
	Current   int                 `json:"current"`
	Pages     int                 `json:"pages"`
}
