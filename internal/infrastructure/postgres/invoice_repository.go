package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = "id, credit_card_id, month, year, value, created_at, paid_at"

// Create persiste la factura del período. El índice único
// (credit_card_id, month, year) respalda la regla de una factura por período.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, credit_card_id, month, year, value, created_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CreditCardID, invoice.Month, invoice.Year,
		invoice.Value, invoice.CreatedAt, invoice.PaidAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe factura para el período", domain.ErrConflict)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanInvoice(r.q.QueryRow(context.Background(), query, id))
}

// GetByPeriod obtiene la factura de una tarjeta en un período. Devuelve (nil, nil) si no existe.
func (r *InvoiceRepo) GetByPeriod(creditCardID string, month, year int) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE credit_card_id = $1 AND month = $2 AND year = $3`
	return r.scanInvoice(r.q.QueryRow(context.Background(), query, creditCardID, month, year))
}

// Update persiste paid_at.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `UPDATE invoices SET paid_at = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, invoice.ID, invoice.PaidAt)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepo) scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var i entity.Invoice
	err := row.Scan(
		&i.ID, &i.CreditCardID, &i.Month, &i.Year, &i.Value, &i.CreatedAt, &i.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &i, nil
}
