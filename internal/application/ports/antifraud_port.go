package ports

import (
	"context"

	"github.com/jhoicas/creditcard-api/internal/domain/entity"
)

// AntiFraudGateway consulta la elegibilidad crediticia de un CPF en el
// sistema antifraude externo.
type AntiFraudGateway interface {
	CheckEligibility(ctx context.Context, taxID string) (*entity.Eligibility, error)
}
