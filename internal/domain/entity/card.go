package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card representa una tarjeta de crédito emitida.
// Invariante en reposo: 0 <= AvailableCreditLimit <= CreditLimit.
// Owner (CPF) es único: una tarjeta por titular.
type Card struct {
	ID                   string
	Owner                string // CPF del titular
	Number               string
	SecurityCode         string
	PrintedName          string
	CreditLimit          decimal.Decimal
	AvailableCreditLimit decimal.Decimal
	CreatedAt            time.Time
}
