package antifraud_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/creditcard-api/internal/domain"
	"github.com/jhoicas/creditcard-api/internal/infrastructure/antifraud"
)

const testTaxID = "71190024063"

// TestCheckEligibility_Aprobado verifica el mapeo de una respuesta aprobada con límite.
func TestCheckEligibility_Aprobado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/anti-fraud/credit-card-eligibility/"+testTaxID, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"shouldHaveCreditCard": true, "proposedLimit": 1000.00}`))
	}))
	defer srv.Close()

	client := antifraud.NewClient(srv.URL)
	elig, err := client.CheckEligibility(context.Background(), testTaxID)
	require.NoError(t, err)

	assert.True(t, elig.Approved)
	require.NotNil(t, elig.ProposedLimit)
	assert.Equal(t, "1000", elig.ProposedLimit.String())
}

// TestCheckEligibility_RechazadoSinLimite verifica que un rechazo llega sin límite propuesto.
func TestCheckEligibility_RechazadoSinLimite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"shouldHaveCreditCard": false}`))
	}))
	defer srv.Close()

	client := antifraud.NewClient(srv.URL)
	elig, err := client.CheckEligibility(context.Background(), testTaxID)
	require.NoError(t, err)

	assert.False(t, elig.Approved)
	assert.Nil(t, elig.ProposedLimit)
}

// TestCheckEligibility_ErrorDelUpstream verifica que un 5xx se mapea a ErrGateway.
func TestCheckEligibility_ErrorDelUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := antifraud.NewClient(srv.URL)
	_, err := client.CheckEligibility(context.Background(), testTaxID)
	assert.ErrorIs(t, err, domain.ErrGateway)
}

// TestCheckEligibility_UpstreamCaido verifica que un fallo de red se mapea a ErrGateway.
func TestCheckEligibility_UpstreamCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor ya cerrado

	client := antifraud.NewClient(srv.URL)
	_, err := client.CheckEligibility(context.Background(), testTaxID)
	assert.ErrorIs(t, err, domain.ErrGateway)
}
