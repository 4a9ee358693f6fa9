package usecase

import (
	"context"

	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las mutaciones de
// cupo (charge, rollback, pago de factura) y serializa por tarjeta junto con
// CardRepository.GetByIDForUpdate.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		cardRepo repository.CardRepository,
		opRepo repository.OperationRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoicePDFGenerator renderiza la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		card *entity.Card,
		operations []*entity.Operation,
	) ([]byte, error)
}
