package repository

import "github.com/jhoicas/creditcard-api/internal/domain/entity"

// OperationRepository define el puerto de persistencia para Operation.
// El libro mayor es append-only: no hay Update ni Delete.
type OperationRepository interface {
	GetByID(id string) (*entity.Operation, error)
	Create(op *entity.Operation) error
	ListByPeriod(creditCardID string, month, year int) ([]*entity.Operation, error)
}
