package repository

import "github.com/jhoicas/creditcard-api/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
// GetByID y GetByPeriod devuelven (nil, nil) cuando la factura no existe.
type InvoiceRepository interface {
	GetByID(id string) (*entity.Invoice, error)
	GetByPeriod(creditCardID string, month, year int) (*entity.Invoice, error)
	Create(invoice *entity.Invoice) error
	// Update persiste PaidAt; retorna domain.ErrNotFound si la factura no existe.
	Update(invoice *entity.Invoice) error
}
