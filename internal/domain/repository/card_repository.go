package repository

import "github.com/jhoicas/creditcard-api/internal/domain/entity"

// CardRepository define el puerto de persistencia para Card.
// GetByID y GetByOwner devuelven (nil, nil) cuando la tarjeta no existe.
type CardRepository interface {
	GetByID(id string) (*entity.Card, error)
	// GetByIDForUpdate lee la tarjeta bloqueando su fila dentro de la
	// transacción actual (SELECT ... FOR UPDATE). Fuera de una transacción se
	// comporta como GetByID.
	GetByIDForUpdate(id string) (*entity.Card, error)
	GetByOwner(taxID string) (*entity.Card, error)
	Create(card *entity.Card) error
	// Update persiste AvailableCreditLimit; retorna domain.ErrNotFound si la
	// tarjeta no existe.
	Update(card *entity.Card) error
	List() ([]*entity.Card, error)
}
