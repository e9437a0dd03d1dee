package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente con su saldo de cobro.
// Paid solo crece (abonos) y nunca debe superar Amount.
type Customer struct {
	ID        string
	Name      string
	Phone     string // único entre clientes
	Address   string
	Platform  string // canal de origen del cliente
	Amount    decimal.Decimal // total adeudado
	Paid      decimal.Decimal // acumulado pagado
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance devuelve lo que falta por pagar.
func (c *Customer) Balance() decimal.Decimal {
	return c.Amount.Sub(c.Paid)
}

// CanPay indica si un abono de increment mantiene Paid <= Amount.
func (c *Customer) CanPay(increment decimal.Decimal) bool {
	return c.Paid.Add(increment).LessThanOrEqual(c.Amount)
}
