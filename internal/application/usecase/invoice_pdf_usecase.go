package usecase

import (
	"context"

	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
)

// InvoicePDFUseCase arma los datos de una factura y delega el render al
// generador PDF.
type InvoicePDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	cardRepo    repository.CardRepository
	opRepo      repository.OperationRepository
	generator   InvoicePDFGenerator
}

// NewInvoicePDFUseCase construye el caso de uso.
func NewInvoicePDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	cardRepo repository.CardRepository,
	opRepo repository.OperationRepository,
	generator InvoicePDFGenerator,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		invoiceRepo: invoiceRepo,
		cardRepo:    cardRepo,
		opRepo:      opRepo,
		generator:   generator,
	}
}

// Generate devuelve los bytes del PDF de la factura con sus operaciones
// procesables del período.
func (uc *InvoicePDFUseCase) Generate(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}

	card, err := uc.cardRepo.GetByID(invoice.CreditCardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}

	operations, err := uc.opRepo.ListByPeriod(invoice.CreditCardID, invoice.Month, invoice.Year)
	if err != nil {
		return nil, err
	}
	processable := make([]*entity.Operation, 0, len(operations))
	for _, op := range operations {
		if op.IsProcessable() {
			processable = append(processable, op)
		}
	}

	return uc.generator.GenerateInvoicePDF(ctx, invoice, card, processable)
}
