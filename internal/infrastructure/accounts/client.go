// Package accounts implementa el gateway HTTP hacia el sistema de cuentas del titular.
package accounts

import (
	"bytes"
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

// Verificar en tiempo de compilación que Client implementa AccountGateway.
var _ ports.AccountGateway = (*Client)(nil)

// Client opera cuentas y retiros vía REST.
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

// accountResponse es el contrato JSON del sistema de cuentas.
type accountResponse struct {
	ID      string          `json:"id"`
	TaxID   string          `json:"taxId"`
	Balance decimal.Decimal `json:"balance"`
}

type accountCreationRequest struct {
	TaxID string `json:"taxId"`
}

type withdrawRequest struct {
	AccountID string          `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
}

// defaultResponse es el cuerpo {"message": ...} que el upstream usa para errores
// y confirmaciones.
type defaultResponse struct {
	Message string `json:"message"`
}

// GetByTaxID obtiene la cuenta y el saldo de un CPF.
func (c *Client) GetByTaxID(ctx context.Context, taxID string) (*entity.Account, error) {
	url := fmt.Sprintf("%s/account-management/balance-by-tax-id/%s", c.baseURL, taxID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	return c.doAccount(req, "consultar cuenta por CPF")
}

// Create crea la cuenta del titular en el sistema de cuentas.
func (c *Client) Create(ctx context.Context, taxID string) (*entity.Account, error) {
	payload, err := json.Marshal(accountCreationRequest{TaxID: taxID})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	url := c.baseURL + "/account-management/create"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doAccount(req, "crear cuenta")
}

// Withdraw retira amount de la cuenta. Un estado no exitoso se propaga como
// domain.ErrGateway con el mensaje del upstream cuando es parseable.
func (c *Client) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) error {
	payload, err := json.Marshal(withdrawRequest{AccountID: accountID, Amount: amount})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	url := c.baseURL + "/account-management/withdraw"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: retiro de la cuenta %s: %s", domain.ErrGateway, accountID, upstreamMessage(resp.Body))
	}
	return nil
}

func (c *Client) doAccount(req *http.Request, action string) (*entity.Account, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrGateway, action, upstreamMessage(resp.Body))
	}

	var body accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decodificar respuesta de cuenta: %v", domain.ErrGateway, err)
	}
	return &entity.Account{ID: body.ID, TaxID: body.TaxID, Balance: body.Balance}, nil
}

// upstreamMessage extrae el mensaje de error del upstream; si el cuerpo no es
// el {"message": ...} esperado, devuelve un mensaje genérico.
func upstreamMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "Unhandled exception."
	}
	var body defaultResponse
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		return "Unhandled exception."
	}
	return body.Message
}
