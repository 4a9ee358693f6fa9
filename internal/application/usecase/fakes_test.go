package usecase_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appusecase "github.com/jhoicas/creditcard-api/internal/application/usecase"
	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
)

// Fakes en memoria para los puertos de persistencia y los gateways externos.
// Devuelven copias en las lecturas para que solo Update/Create persistan.

// ── CardRepository ────────────────────────────────────────────────────────────

type fakeCardRepo struct {
	cards     map[string]*entity.Card
	updateErr error
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: make(map[string]*entity.Card)}
}

func (r *fakeCardRepo) GetByID(id string) (*entity.Card, error) {
	card, ok := r.cards[id]
	if !ok {
		return nil, nil
	}
	c := *card
	return &c, nil
}

func (r *fakeCardRepo) GetByIDForUpdate(id string) (*entity.Card, error) {
	return r.GetByID(id)
}

func (r *fakeCardRepo) GetByOwner(taxID string) (*entity.Card, error) {
	for _, card := range r.cards {
		if card.Owner == taxID {
			c := *card
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCardRepo) Create(card *entity.Card) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	c := *card
	r.cards[card.ID] = &c
	return nil
}

func (r *fakeCardRepo) Update(card *entity.Card) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.cards[card.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *card
	r.cards[card.ID] = &c
	return nil
}

func (r *fakeCardRepo) List() ([]*entity.Card, error) {
	out := make([]*entity.Card, 0, len(r.cards))
	for _, card := range r.cards {
		c := *card
		out = append(out, &c)
	}
	return out, nil
}

// ── OperationRepository ───────────────────────────────────────────────────────

type fakeOperationRepo struct {
	operations []*entity.Operation
}

func newFakeOperationRepo() *fakeOperationRepo {
	return &fakeOperationRepo{}
}

func (r *fakeOperationRepo) GetByID(id string) (*entity.Operation, error) {
	for _, op := range r.operations {
		if op.ID == id {
			o := *op
			return &o, nil
		}
	}
	return nil, nil
}

func (r *fakeOperationRepo) Create(op *entity.Operation) error {
	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	o := *op
	r.operations = append(r.operations, &o)
	return nil
}

func (r *fakeOperationRepo) ListByPeriod(creditCardID string, month, year int) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.operations {
		if op.CreditCardID == creditCardID && op.Month == month && op.Year == year {
			o := *op
			out = append(out, &o)
		}
	}
	return out, nil
}

// ── InvoiceRepository ─────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices []*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{}
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			i := *inv
			return &i, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByPeriod(creditCardID string, month, year int) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.CreditCardID == creditCardID && inv.Month == month && inv.Year == year {
			i := *inv
			return &i, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) Create(invoice *entity.Invoice) error {
	existing, _ := r.GetByPeriod(invoice.CreditCardID, invoice.Month, invoice.Year)
	if existing != nil {
		return fmt.Errorf("%w: ya existe factura para el período", domain.ErrConflict)
	}
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	i := *invoice
	r.invoices = append(r.invoices, &i)
	return nil
}

func (r *fakeInvoiceRepo) Update(invoice *entity.Invoice) error {
	for idx, inv := range r.invoices {
		if inv.ID == invoice.ID {
			i := *invoice
			r.invoices[idx] = &i
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	cards    *fakeCardRepo
	ops      *fakeOperationRepo
	invoices *fakeInvoiceRepo
}

var _ appusecase.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	cardRepo repository.CardRepository,
	opRepo repository.OperationRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return fn(r.cards, r.ops, r.invoices)
}

// ── Gateways externos ─────────────────────────────────────────────────────────

type fakeAntiFraud struct {
	eligibility *entity.Eligibility
	err         error
}

func (g *fakeAntiFraud) CheckEligibility(_ context.Context, _ string) (*entity.Eligibility, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.eligibility, nil
}

type fakeAccounts struct {
	account     *entity.Account
	getErr      error
	createErr   error
	withdrawErr error
	withdrawals []decimal.Decimal
	created     []string
}

func (g *fakeAccounts) GetByTaxID(_ context.Context, _ string) (*entity.Account, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	return g.account, nil
}

func (g *fakeAccounts) Create(_ context.Context, taxID string) (*entity.Account, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = append(g.created, taxID)
	return &entity.Account{ID: uuid.New().String(), TaxID: taxID, Balance: decimal.Zero}, nil
}

func (g *fakeAccounts) Withdraw(_ context.Context, _ string, amount decimal.Decimal) error {
	if g.withdrawErr != nil {
		return g.withdrawErr
	}
	g.withdrawals = append(g.withdrawals, amount)
	return nil
}
