package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/creditcard-api/internal/domain/entity"
)

// ChargeRequest solicitud de compra contra una tarjeta.
type ChargeRequest struct {
	CreditCardID string          `json:"credit_card_id"`
	Value        decimal.Decimal `json:"value"`
	Installments int             `json:"installments"`
	Description  string          `json:"description"`
}

// OperationResponse representación HTTP de un asiento del libro mayor.
type OperationResponse struct {
	ID           string          `json:"id"`
	CreditCardID string          `json:"credit_card_id"`
	Type         string          `json:"type"`
	Value        decimal.Decimal `json:"value"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewOperationResponse mapea la entidad a su representación HTTP.
func NewOperationResponse(op *entity.Operation) OperationResponse {
	return OperationResponse{
		ID:           op.ID,
		CreditCardID: op.CreditCardID,
		Type:         op.Type,
		Value:        op.Value,
		Month:        op.Month,
		Year:         op.Year,
		Description:  op.Description,
		CreatedAt:    op.CreatedAt,
	}
}

// NewOperationResponses mapea una lista de operaciones.
func NewOperationResponses(ops []*entity.Operation) []OperationResponse {
	out := make([]OperationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, NewOperationResponse(op))
	}
	return out
}
