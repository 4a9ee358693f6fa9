// Package antifraud implementa el gateway HTTP hacia el sistema antifraude.
package antifraud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/creditcard-api/internal/application/ports"
	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa AntiFraudGateway.
var _ ports.AntiFraudGateway = (*Client)(nil)

// Client consulta la elegibilidad crediticia vía REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el gateway.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// eligibilityResponse es el contrato JSON del antifraude.
type eligibilityResponse struct {
	ShouldHaveCreditCard bool             `json:"shouldHaveCreditCard"`
	ProposedLimit        *decimal.Decimal `json:"proposedLimit"`
}

// CheckEligibility consulta si el CPF puede recibir una tarjeta y con qué límite.
func (c *Client) CheckEligibility(ctx context.Context, taxID string) (*entity.Eligibility, error) {
	url := fmt.Sprintf("%s/anti-fraud/credit-card-eligibility/%s", c.baseURL, taxID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: consultar elegibilidad: %s", domain.ErrGateway, upstreamMessage(resp.Body))
	}

	var body eligibilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decodificar respuesta de elegibilidad: %v", domain.ErrGateway, err)
	}

	return &entity.Eligibility{
		Approved:      body.ShouldHaveCreditCard,
		ProposedLimit: body.ProposedLimit,
	}, nil
}

// upstreamMessage extrae el mensaje de error del upstream; si el cuerpo no es
// el {"message": ...} esperado, devuelve un mensaje genérico.
func upstreamMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "Unhandled exception."
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		return "Unhandled exception."
	}
	return body.Message
}
