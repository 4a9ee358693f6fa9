package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/creditcard-api/internal/domain/entity"
)

// InvoiceResponse representación HTTP de una factura mensual.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	CreditCardID string          `json:"credit_card_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Value        decimal.Decimal `json:"value"`
	CreatedAt    time.Time       `json:"created_at"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
}

// NewInvoiceResponse mapea la entidad a su representación HTTP.
func NewInvoiceResponse(invoice *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:           invoice.ID,
		CreditCardID: invoice.CreditCardID,
		Month:        invoice.Month,
		Year:         invoice.Year,
		Value:        invoice.Value,
		CreatedAt:    invoice.CreatedAt,
		PaidAt:       invoice.PaidAt,
	}
}
