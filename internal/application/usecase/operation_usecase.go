package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/creditcard-api/internal/application/dto"
	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
	"github.com/jhoicas/creditcard-api/pkg/logger"
)

const (
	minInstallments = 1
	maxInstallments = 12

	// Tope de avance al buscar el próximo período facturable (10 años de
	// facturas consecutivas ya generadas es un estado degenerado del store).
	maxPeriodLookahead = 120
)

// Valor mínimo de compra cuando hay más de una cuota.
var minInstallmentPurchase = decimal.NewFromInt(6)

// OperationUseCase registra compras y devoluciones en el libro mayor de la
// tarjeta manteniendo el cupo disponible como saldo derivado.
type OperationUseCase struct {
	txRunner TxRunner
	cardRepo repository.CardRepository
	opRepo   repository.OperationRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewOperationUseCase construye el caso de uso. now permite inyectar el reloj
// en tests; con nil se usa time.Now.
func NewOperationUseCase(
	txRunner TxRunner,
	cardRepo repository.CardRepository,
	opRepo repository.OperationRepository,
	log *logger.Logger,
	now func() time.Time,
) *OperationUseCase {
	if now == nil {
		now = time.Now
	}
	return &OperationUseCase{
		txRunner: txRunner,
		cardRepo: cardRepo,
		opRepo:   opRepo,
		log:      log,
		now:      now,
	}
}

// GetByID obtiene una operación por su ID.
func (uc *OperationUseCase) GetByID(_ context.Context, id string) (*entity.Operation, error) {
	op, err := uc.opRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	return op, nil
}

// Charge registra una compra dividida en cuotas mensuales consecutivas a
// partir del próximo período sin factura, y descuenta el valor completo del
// cupo disponible de inmediato (no cuota a cuota).
//
// Toda la mutación corre en una transacción con la fila de la tarjeta
// bloqueada, para que dos compras concurrentes no lean el mismo cupo.
func (uc *OperationUseCase) Charge(ctx context.Context, in dto.ChargeRequest) ([]*entity.Operation, error) {
	if in.Value.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Installments < minInstallments || in.Installments > maxInstallments {
		return nil, domain.ErrInvalidInput
	}
	if in.Installments > 1 && in.Value.LessThan(minInstallmentPurchase) {
		return nil, domain.ErrInvalidInput
	}

	var created []*entity.Operation
	err := uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		opRepo repository.OperationRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		card, err := cardRepo.GetByIDForUpdate(in.CreditCardID)
		if err != nil {
			return err
		}
		if card == nil {
			return domain.ErrNotFound
		}
		if card.AvailableCreditLimit.LessThan(in.Value) {
			return domain.ErrInsufficientLimit
		}

		period, err := uc.nextChargeablePeriod(invoiceRepo, card.ID)
		if err != nil {
			return err
		}

		// División simple del valor entre las cuotas; el residuo de una
		// división no exacta no se corrige en la última cuota.
		installmentValue := in.Value.Div(decimal.NewFromInt(int64(in.Installments)))
		for i := 1; i <= in.Installments; i++ {
			op := &entity.Operation{
				CreditCardID: card.ID,
				Type:         entity.OperationTypeCharge,
				Value:        installmentValue,
				Month:        int(period.Month()),
				Year:         period.Year(),
				Description:  fmt.Sprintf("%s - %d/%d", in.Description, i, in.Installments),
				CreatedAt:    uc.now(),
			}
			if err := opRepo.Create(op); err != nil {
				return err
			}
			created = append(created, op)
			period = period.AddDate(0, 1, 0)
		}

		card.AvailableCreditLimit = card.AvailableCreditLimit.Sub(in.Value)
		return cardRepo.Update(card)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("card_id", in.CreditCardID).
		Str("value", in.Value.String()).
		Int("installments", in.Installments).
		Msg("compra registrada")

	return created, nil
}

// Rollback revierte una operación de tipo CHARGE: crea el asiento contrario
// en el período actual y devuelve el valor al cupo disponible.
func (uc *OperationUseCase) Rollback(ctx context.Context, operationID string) (*entity.Operation, error) {
	var rollback *entity.Operation
	err := uc.txRunner.Run(ctx, func(
		cardRepo repository.CardRepository,
		opRepo repository.OperationRepository,
		_ repository.InvoiceRepository,
	) error {
		op, err := opRepo.GetByID(operationID)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}
		if op.Type != entity.OperationTypeCharge {
			return domain.ErrInvalidState
		}

		card, err := cardRepo.GetByIDForUpdate(op.CreditCardID)
		if err != nil {
			return err
		}
		if card == nil {
			return domain.ErrNotFound
		}

		now := uc.now()
		rollback = &entity.Operation{
			CreditCardID: op.CreditCardID,
			Type:         entity.OperationTypeRollback,
			Value:        op.Value.Neg(),
			Month:        int(now.Month()),
			Year:         now.Year(),
			Description:  fmt.Sprintf("Rollback of operation %s.", op.ID),
			CreatedAt:    now,
		}
		if err := opRepo.Create(rollback); err != nil {
			return err
		}

		card.AvailableCreditLimit = card.AvailableCreditLimit.Add(op.Value)
		return cardRepo.Update(card)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("operation_id", operationID).
		Str("rollback_id", rollback.ID).
		Msg("operación revertida")

	return rollback, nil
}

// ListByPeriod lista las operaciones de una tarjeta en un período (month, year).
func (uc *OperationUseCase) ListByPeriod(_ context.Context, creditCardID string, month, year int) ([]*entity.Operation, error) {
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
	return uc.opRepo.ListByPeriod(creditCardID, month, year)
}

// nextChargeablePeriod avanza mes a mes desde el actual hasta encontrar un
// período sin factura generada (una factura cierra su período a compras nuevas).
func (uc *OperationUseCase) nextChargeablePeriod(invoiceRepo repository.InvoiceRepository, creditCardID string) (time.Time, error) {
	now := uc.now()
	period := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxPeriodLookahead; i++ {
		invoice, err := invoiceRepo.GetByPeriod(creditCardID, int(period.Month()), period.Year())
		if err != nil {
			return time.Time{}, err
		}
		if invoice == nil {
			return period, nil
		}
		period = period.AddDate(0, 1, 0)
	}
	return time.Time{}, domain.ErrConflict
}
