package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/creditcard-api/internal/application/ports"
	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/cardnumber"
	"github.com/jhoicas/creditcard-api/internal/domain/cpf"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
	"github.com/jhoicas/creditcard-api/pkg/logger"
)

const maxPrintedNameLength = 100

// CardConfig parámetros de emisión.
type CardConfig struct {
	BIN                string
	NumberLength       int
	SecurityCodeLength int
}

// CardUseCase emite tarjetas de crédito: valida el CPF, consulta elegibilidad
// en el antifraude, crea la cuenta del titular y persiste la tarjeta.
type CardUseCase struct {
	cardRepo  repository.CardRepository
	antiFraud ports.AntiFraudGateway
	accounts  ports.AccountGateway
	generator *cardnumber.Generator
	cfg       CardConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewCardUseCase construye el caso de uso. now permite inyectar el reloj en
// tests; con nil se usa time.Now.
func NewCardUseCase(
	cardRepo repository.CardRepository,
	antiFraud ports.AntiFraudGateway,
	accounts ports.AccountGateway,
	generator *cardnumber.Generator,
	cfg CardConfig,
	log *logger.Logger,
	now func() time.Time,
) *CardUseCase {
	if now == nil {
		now = time.Now
	}
	return &CardUseCase{
		cardRepo:  cardRepo,
		antiFraud: antiFraud,
		accounts:  accounts,
		generator: generator,
		cfg:       cfg,
		log:       log,
		now:       now,
	}
}

// GetByID obtiene una tarjeta por su ID.
func (uc *CardUseCase) GetByID(_ context.Context, id string) (*entity.Card, error) {
	card, err := uc.cardRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, domain.ErrNotFound
	}
	return card, nil
}

// RequestCreation emite una tarjeta para el CPF dado.
//
// No hay compensación entre los efectos externos: si la cuenta se crea en el
// sistema de cuentas y la persistencia de la tarjeta falla después, la cuenta
// queda huérfana (ver DESIGN.md).
func (uc *CardUseCase) RequestCreation(ctx context.Context, taxID, printedName string) (*entity.Card, error) {
	if !cpf.IsValid(taxID) {
		return nil, domain.ErrInvalidInput
	}
	trimmed := strings.TrimSpace(printedName)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxPrintedNameLength {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.cardRepo.GetByOwner(taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	eligibility, err := uc.antiFraud.CheckEligibility(ctx, taxID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("tax_id", taxID).
		Bool("approved", eligibility.Approved).
		Msg("respuesta de elegibilidad del antifraude")

	if !eligibility.Approved {
		return nil, domain.ErrCardRejected
	}
	// Aprobado sin límite propuesto es una respuesta contradictoria del
	// antifraude; nunca se asume un valor por defecto.
	if eligibility.ProposedLimit == nil {
		return nil, domain.ErrInvalidUpstreamData
	}
	limit := *eligibility.ProposedLimit

	account, err := uc.accounts.Create(ctx, taxID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("account_id", account.ID).Str("tax_id", taxID).Msg("cuenta creada")

	card := &entity.Card{
		Owner:                taxID,
		Number:               uc.generator.Number(uc.cfg.BIN, uc.cfg.NumberLength),
		SecurityCode:         uc.generator.SecurityCode(uc.cfg.SecurityCodeLength),
		PrintedName:          printedName,
		CreditLimit:          limit,
		AvailableCreditLimit: limit,
		CreatedAt:            uc.now(),
	}
	if err := uc.cardRepo.Create(card); err != nil {
		return nil, err
	}
	uc.log.Info().Str("card_id", card.ID).Str("tax_id", taxID).Msg("tarjeta emitida")

	return card, nil
}
