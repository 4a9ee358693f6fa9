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

var _ repository.CardRepository = (*CardRepo)(nil)

// CardRepo implementación del puerto CardRepository sobre PostgreSQL (usable con pool o tx).
type CardRepo struct {
	q Querier
}

// NewCardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCardRepository(q Querier) *CardRepo {
	return &CardRepo{q: q}
}

const cardColumns = "id, owner, number, security_code, printed_name, credit_limit, available_credit_limit, created_at"

// Create persiste una nueva tarjeta. El índice único de owner respalda la
// regla de una tarjeta por CPF.
func (r *CardRepo) Create(card *entity.Card) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cards (id, owner, number, security_code, printed_name, credit_limit, available_credit_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		card.ID, card.Owner, card.Number, card.SecurityCode, card.PrintedName,
		card.CreditLimit, card.AvailableCreditLimit, card.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el CPF ya tiene tarjeta", domain.ErrConflict)
		}
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

// GetByID obtiene una tarjeta por ID. Devuelve (nil, nil) si no existe.
func (r *CardRepo) GetByID(id string) (*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return r.scanCard(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene la tarjeta bloqueando su fila dentro de la
// transacción actual; serializa las mutaciones de cupo por tarjeta.
func (r *CardRepo) GetByIDForUpdate(id string) (*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 FOR UPDATE`
	return r.scanCard(r.q.QueryRow(context.Background(), query, id))
}

// GetByOwner obtiene la tarjeta de un CPF. Devuelve (nil, nil) si no existe.
func (r *CardRepo) GetByOwner(taxID string) (*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE owner = $1`
	return r.scanCard(r.q.QueryRow(context.Background(), query, taxID))
}

// Update persiste el cupo disponible.
func (r *CardRepo) Update(card *entity.Card) error {
	query := `UPDATE cards SET available_credit_limit = $2 WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query, card.ID, card.AvailableCreditLimit)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las tarjetas (para el cierre mensual de facturas).
func (r *CardRepo) List() ([]*entity.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []*entity.Card
	for rows.Next() {
		var c entity.Card
		if err := rows.Scan(
			&c.ID, &c.Owner, &c.Number, &c.SecurityCode, &c.PrintedName,
			&c.CreditLimit, &c.AvailableCreditLimit, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, &c)
	}
	return cards, rows.Err()
}

func (r *CardRepo) scanCard(row pgx.Row) (*entity.Card, error) {
	var c entity.Card
	err := row.Scan(
		&c.ID, &c.Owner, &c.Number, &c.SecurityCode, &c.PrintedName,
		&c.CreditLimit, &c.AvailableCreditLimit, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return &c, nil
}
