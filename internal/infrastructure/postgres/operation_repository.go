package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/creditcard-api/internal/domain/entity"
	"github.com/jhoicas/creditcard-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementación del puerto OperationRepository sobre PostgreSQL
// (usable con pool o tx). El libro mayor es append-only: solo INSERT y SELECT.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = "id, credit_card_id, type, value, month, year, description, created_at"

// Create persiste un asiento del libro mayor.
func (r *OperationRepo) Create(op *entity.Operation) error {
	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	query := `
		INSERT INTO operations (id, credit_card_id, type, value, month, year, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		op.ID, op.CreditCardID, op.Type, op.Value, op.Month, op.Year, op.Description, op.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// GetByID obtiene una operación por ID. Devuelve (nil, nil) si no existe.
func (r *OperationRepo) GetByID(id string) (*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1`
	var o entity.Operation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CreditCardID, &o.Type, &o.Value, &o.Month, &o.Year, &o.Description, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	return &o, nil
}

// ListByPeriod lista las operaciones de una tarjeta en un período.
func (r *OperationRepo) ListByPeriod(creditCardID string, month, year int) ([]*entity.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operations
		WHERE credit_card_id = $1 AND month = $2 AND year = $3
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, creditCardID, month, year)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var operations []*entity.Operation
	for rows.Next() {
		var o entity.Operation
		if err := rows.Scan(
			&o.ID, &o.CreditCardID, &o.Type, &o.Value, &o.Month, &o.Year, &o.Description, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		operations = append(operations, &o)
	}
	return operations, rows.Err()
}
