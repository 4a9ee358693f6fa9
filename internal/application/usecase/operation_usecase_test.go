package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/creditcard-api/internal/application/dto"
	appusecase "github.com/jhoicas/creditcard-api/internal/application/usecase"
	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/pkg/logger"
)

// ledgerEnv agrupa los fakes compartidos por los tests del libro mayor.
type ledgerEnv struct {
	cards    *fakeCardRepo
	ops      *fakeOperationRepo
	invoices *fakeInvoiceRepo
	accounts *fakeAccounts
	opUC     *appusecase.OperationUseCase
	invUC    *appusecase.InvoiceUseCase
}

func newLedgerEnv() *ledgerEnv {
	cards := newFakeCardRepo()
	ops := newFakeOperationRepo()
	invoices := newFakeInvoiceRepo()
	accounts := &fakeAccounts{}
	tx := &fakeTxRunner{cards: cards, ops: ops, invoices: invoices}
	return &ledgerEnv{
		cards:    cards,
		ops:      ops,
		invoices: invoices,
		accounts: accounts,
		opUC:     appusecase.NewOperationUseCase(tx, cards, ops, logger.Nop(), fixedClock),
		invUC:    appusecase.NewInvoiceUseCase(tx, cards, ops, invoices, accounts, logger.Nop(), fixedClock),
	}
}

func (e *ledgerEnv) seedCard(t *testing.T, available float64) *entity.Card {
	t.Helper()
	limit := decimal.NewFromFloat(available)
	card := &entity.Card{
		Owner:                testTaxID,
		Number:               "124578386862",
		SecurityCode:         "123",
		PrintedName:          "JOAO DA SILVA",
		CreditLimit:          limit,
		AvailableCreditLimit: limit,
		CreatedAt:            fixedNow,
	}
	require.NoError(t, e.cards.Create(card))
	return card
}

func (e *ledgerEnv) cardState(t *testing.T, id string) *entity.Card {
	t.Helper()
	card, err := e.cards.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, card)
	return card
}

func chargeReq(cardID string, value float64, installments int) dto.ChargeRequest {
	return dto.ChargeRequest{
		CreditCardID: cardID,
		Value:        decimal.NewFromFloat(value),
		Installments: installments,
		Description:  "Compra",
	}
}

// ── Charge ────────────────────────────────────────────────────────────────────

func TestCharge_ValorCeroUnaCuota(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	created, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, 0, 1))
	require.NoError(t, err)

	require.Len(t, created, 1)
	assert.Equal(t, entity.OperationTypeCharge, created[0].Type)
	assert.True(t, created[0].Value.IsZero())

	after := env.cardState(t, card.ID)
	assert.True(t, after.AvailableCreditLimit.Equal(decimal.NewFromInt(1000)))
}

func TestCharge_CupoInsuficiente(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 50)

	_, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, 500, 1))
	assert.ErrorIs(t, err, domain.ErrInsufficientLimit)
}

func TestCharge_EntradasInvalidas(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	_, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, -10, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor negativo")

	_, err = env.opUC.Charge(context.Background(), chargeReq(card.ID, 100, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cero cuotas")

	_, err = env.opUC.Charge(context.Background(), chargeReq(card.ID, 100, 13))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "más de 12 cuotas")

	// Mínimo de compra de 6.00 cuando hay más de una cuota
	_, err = env.opUC.Charge(context.Background(), chargeReq(card.ID, 5.0, 3))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "compra bajo el mínimo en cuotas")
}

func TestCharge_TarjetaNoExiste(t *testing.T) {
	env := newLedgerEnv()

	_, err := env.opUC.Charge(context.Background(), chargeReq("no-existe", 100, 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCharge_CuotasEnMesesConsecutivos(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	created, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, 300, 3))
	require.NoError(t, err)
	require.Len(t, created, 3)

	// fixedNow es agosto de 2026: cuotas en 8/2026, 9/2026 y 10/2026.
	for i, op := range created {
		assert.Equal(t, entity.OperationTypeCharge, op.Type)
		assert.True(t, op.Value.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, 2026, op.Year)
		assert.Equal(t, 8+i, op.Month)
		assert.Equal(t, fmt.Sprintf("Compra - %d/3", i+1), op.Description)
	}

	// El cupo se descuenta por el valor completo de inmediato, no cuota a cuota.
	after := env.cardState(t, card.ID)
	assert.True(t, after.AvailableCreditLimit.Equal(decimal.NewFromInt(700)))
}

// Una factura ya generada cierra su período: las cuotas arrancan en el primer
// mes sin factura.
func TestCharge_SaltaPeriodosFacturados(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	require.NoError(t, env.invoices.Create(&entity.Invoice{
		CreditCardID: card.ID,
		Month:        8,
		Year:         2026,
		Value:        decimal.Zero,
		CreatedAt:    fixedNow,
	}))

	created, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, 100, 2))
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 9, created[0].Month)
	assert.Equal(t, 10, created[1].Month)
}

// División no exacta: cada cuota lleva value/n sin corrección de residuo.
func TestCharge_DivisionNoExacta(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	created, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, 10, 3))
	require.NoError(t, err)
	require.Len(t, created, 3)

	expected := decimal.NewFromInt(10).Div(decimal.NewFromInt(3))
	for _, op := range created {
		assert.True(t, op.Value.Equal(expected))
	}
}

// ── Rollback ──────────────────────────────────────────────────────────────────

func TestRollback_RestauraCupo(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	created, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, 20, 1))
	require.NoError(t, err)

	rollback, err := env.opUC.Rollback(context.Background(), created[0].ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OperationTypeRollback, rollback.Type)
	assert.True(t, rollback.Value.Equal(decimal.NewFromInt(-20)))
	assert.Contains(t, rollback.Description, created[0].ID)

	after := env.cardState(t, card.ID)
	assert.True(t, after.AvailableCreditLimit.Equal(decimal.NewFromInt(1000)))
}

func TestRollback_SoloOperacionesCharge(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	created, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, 20, 1))
	require.NoError(t, err)

	rollback, err := env.opUC.Rollback(context.Background(), created[0].ID)
	require.NoError(t, err)

	// Revertir un ROLLBACK no está permitido.
	_, err = env.opUC.Rollback(context.Background(), rollback.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRollback_OperacionNoExiste(t *testing.T) {
	env := newLedgerEnv()

	_, err := env.opUC.Rollback(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── ListByPeriod ──────────────────────────────────────────────────────────────

func TestListByPeriod_Validaciones(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	_, err := env.opUC.ListByPeriod(context.Background(), card.ID, 0, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.opUC.ListByPeriod(context.Background(), card.ID, 13, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.opUC.ListByPeriod(context.Background(), card.ID, 8, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.opUC.ListByPeriod(context.Background(), "no-existe", 8, 2026)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos llamadas idénticas sin escrituras intermedias devuelven lo mismo.
func TestListByPeriod_Idempotente(t *testing.T) {
	env := newLedgerEnv()
	card := env.seedCard(t, 1000)

	_, err := env.opUC.Charge(context.Background(), chargeReq(card.ID, 120, 2))
	require.NoError(t, err)

	first, err := env.opUC.ListByPeriod(context.Background(), card.ID, 8, 2026)
	require.NoError(t, err)
	second, err := env.opUC.ListByPeriod(context.Background(), card.ID, 8, 2026)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.True(t, first[i].Value.Equal(second[i].Value))
	}
	assert.Len(t, first, 1) // solo la cuota 1/2 cae en agosto
}
