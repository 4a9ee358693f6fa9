package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación del libro mayor de la tarjeta.
// Convención de signo: CHARGE es positivo (deuda); ROLLBACK e
// INVOICE_PAYMENT son negativos (devolución de cupo / ya liquidado).
const (
	OperationTypeCharge         = "CHARGE"
	OperationTypeRollback       = "ROLLBACK"
	OperationTypeInvoicePayment = "INVOICE_PAYMENT"
)

// Operation es un asiento del libro mayor de una tarjeta.
// Es inmutable una vez creada: nunca se actualiza ni se borra.
type Operation struct {
	ID           string
	CreditCardID string
	Type         string
	Value        decimal.Decimal
	Month        int
	Year         int
	Description  string
	CreatedAt    time.Time
}

// IsProcessable indica si la operación cuenta para el valor de una factura
// (INVOICE_PAYMENT se excluye para no contar dos veces).
func (o *Operation) IsProcessable() bool {
	return o.Type == OperationTypeCharge || o.Type == OperationTypeRollback
}
