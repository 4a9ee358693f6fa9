package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/creditcard-api/internal/application/ports"
	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
	"github.com/jhoicas/creditcard-api/pkg/logger"
)

// InvoiceUseCase genera el cierre mensual de operaciones de una tarjeta y
// liquida facturas contra la cuenta externa del titular.
type InvoiceUseCase struct {
	txRunner    TxRunner
	cardRepo    repository.CardRepository
	opRepo      repository.OperationRepository
	invoiceRepo repository.InvoiceRepository
	accounts    ports.AccountGateway
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. now permite inyectar el reloj
// en tests; con nil se usa time.Now.
func NewInvoiceUseCase(
	txRunner TxRunner,
	cardRepo repository.CardRepository,
	opRepo repository.OperationRepository,
	invoiceRepo repository.InvoiceRepository,
	accounts ports.AccountGateway,
	log *logger.Logger,
	now func() time.Time,
) *InvoiceUseCase {
	if now == nil {
		now = time.Now
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		cardRepo:    cardRepo,
		opRepo:      opRepo,
		invoiceRepo: invoiceRepo,
		accounts:    accounts,
		log:         log,
		now:         now,
	}
}

// GetByID obtiene una factura por su ID.
func (uc *InvoiceUseCase) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

// GetByPeriod obtiene la factura de una tarjeta en un período (month, year).
func (uc *InvoiceUseCase) GetByPeriod(_ context.Context, creditCardID string, month, year int) (*entity.Invoice, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidInput
	}
	if year < 0 {
		return nil, domain.ErrInvalidInput
	}
	card, err := uc.cardRepo.GetByID(creditCardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}
	invoice, err := uc.invoiceRepo.GetByPeriod(creditCardID, month, year)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	return invoice, nil
}

// Generate cierra el período calendario actual de la tarjeta: suma las
// operaciones procesables (CHARGE y ROLLBACK; INVOICE_PAYMENT se excluye
// para no contar dos veces) y crea la factura. Una suma <= 0 no debe nada,
// así que la factura nace ya marcada como pagada sin mover dinero.
func (uc *InvoiceUseCase) Generate(ctx context.Context, creditCardID string) (*entity.Invoice, error) {
	now := uc.now()
	month, year := int(now.Month()), now.Year()

	var invoice *entity.Invoice
	err := uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		opRepo repository.OperationRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		card, err := cardRepo.GetByID(creditCardID)
		if err != nil {
			return err
		}
		if card == nil {
			return domain.ErrNotFound
		}

		existing, err := invoiceRepo.GetByPeriod(creditCardID, month, year)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}

		operations, err := opRepo.ListByPeriod(creditCardID, month, year)
		if err != nil {
			return err
		}
		value := decimal.Zero
		for _, op := range operations {
			if op.IsProcessable() {
				value = value.Add(op.Value)
			}
		}

		invoice = &entity.Invoice{
			CreditCardID: creditCardID,
			Month:        month,
			Year:         year,
			Value:        value,
			CreatedAt:    now,
		}
		if !value.GreaterThan(decimal.Zero) {
			paidAt := now
			invoice.PaidAt = &paidAt
		}
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("card_id", creditCardID).
		Int("month", month).
		Int("year", year).
		Str("value", invoice.Value.String()).
		Bool("paid_at_creation", invoice.IsPaid()).
		Msg("factura generada")

	return invoice, nil
}

// Pay liquida una factura: retira el valor de la cuenta externa del titular,
// devuelve el valor al cupo disponible y registra el asiento INVOICE_PAYMENT.
//
// El retiro externo ocurre fuera de la transacción de BD; si la persistencia
// posterior falla, el retiro no se compensa (ver DESIGN.md).
func (uc *InvoiceUseCase) Pay(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.IsPaid() {
		return nil, domain.ErrInvalidState
	}

	card, err := uc.cardRepo.GetByID(invoice.CreditCardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}

	account, err := uc.accounts.GetByTaxID(ctx, card.Owner)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(invoice.Value) {
		return nil, domain.ErrInsufficientFunds
	}

	if err := uc.accounts.Withdraw(ctx, account.ID, invoice.Value); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("account_id", account.ID).
		Str("invoice_id", invoice.ID).
		Str("value", invoice.Value.String()).
		Msg("retiro de cuenta realizado para pago de factura")

	now := uc.now()
	err = uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		opRepo repository.OperationRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		txCard, err := cardRepo.GetByIDForUpdate(card.ID)
		if err != nil {
			return err
		}
		if txCard == nil {
			return domain.ErrNotFound
		}

		txCard.AvailableCreditLimit = txCard.AvailableCreditLimit.Add(invoice.Value)
		if err := cardRepo.Update(txCard); err != nil {
			return err
		}

		payment := &entity.Operation{
			CreditCardID: txCard.ID,
			Type:         entity.OperationTypeInvoicePayment,
			Value:        invoice.Value.Neg(),
			Month:        int(now.Month()),
			Year:         now.Year(),
			Description:  fmt.Sprintf("Payment of invoice #%s", invoice.ID),
			CreatedAt:    now,
		}
		if err := opRepo.Create(payment); err != nil {
			return err
		}

		invoice.PaidAt = &now
		return invoiceRepo.Update(invoice)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice_id", invoice.ID).Msg("factura pagada")
	return invoice, nil
}
