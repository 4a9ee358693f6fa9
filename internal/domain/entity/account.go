package entity

import "github.com/shopspring/decimal"

// Account es la cuenta del titular en el sistema externo de cuentas.
// Este servicio no la persiste; solo la consume vía gateway.
type Account struct {
	ID      string
	TaxID   string
	Balance decimal.Decimal
}

// Eligibility es la respuesta del sistema antifraude para un CPF.
// ProposedLimit puede venir nulo aun con Approved en true; ese caso se trata
// como dato inconsistente del upstream, nunca se asume un valor por defecto.
type Eligibility struct {
	Approved      bool
	ProposedLimit *decimal.Decimal
}
