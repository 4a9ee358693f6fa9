package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice es el cierre mensual de operaciones de una tarjeta.
// Existe a lo más una factura por (CreditCardID, Month, Year).
// PaidAt == nil significa pendiente de pago; una vez asignado es terminal.
type Invoice struct {
	ID           string
	CreditCardID string
	Month        int
	Year         int
	Value        decimal.Decimal
	CreatedAt    time.Time
	PaidAt       *time.Time
}

// IsPaid indica si la factura ya fue pagada.
func (i *Invoice) IsPaid() bool {
	return i.PaidAt != nil
}
