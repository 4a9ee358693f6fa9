package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/creditcard-api/internal/domain/entity"
)

// AccountGateway opera sobre el sistema externo de cuentas del titular.
// Las llamadas son síncronas y bloqueantes; un fallo del upstream se
// propaga como domain.ErrGateway envolviendo el mensaje remoto.
type AccountGateway interface {
	GetByTaxID(ctx context.Context, taxID string) (*entity.Account, error)
	Create(ctx context.Context, taxID string) (*entity.Account, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) error
}
