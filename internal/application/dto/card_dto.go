package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/creditcard-api/internal/domain/entity"
)

// CreateCardRequest solicitud de emisión de tarjeta.
type CreateCardRequest struct {
	TaxID       string `json:"tax_id"`
	PrintedName string `json:"printed_name"`
}

// CardResponse representación HTTP de una tarjeta.
type CardResponse struct {
	ID                   string          `json:"id"`
	Owner                string          `json:"owner"`
	Number               string          `json:"number"`
	SecurityCode         string          `json:"security_code"`
	PrintedName          string          `json:"printed_name"`
	CreditLimit          decimal.Decimal `json:"credit_limit"`
	AvailableCreditLimit decimal.Decimal `json:"available_credit_limit"`
	CreatedAt            time.Time       `json:"created_at"`
}

// NewCardResponse mapea la entidad a su representación HTTP.
func NewCardResponse(card *entity.Card) CardResponse {
	return CardResponse{
		ID:                   card.ID,
		Owner:                card.Owner,
		Number:               card.Number,
		SecurityCode:         card.SecurityCode,
		PrintedName:          card.PrintedName,
		CreditLimit:          card.CreditLimit,
		AvailableCreditLimit: card.AvailableCreditLimit,
		CreatedAt:            card.CreatedAt,
	}
}
