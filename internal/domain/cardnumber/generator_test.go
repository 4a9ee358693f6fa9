package cardnumber_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/creditcard-api/internal/domain/cardnumber"
)

// TestNumber_LargoYLuhn: el número generado siempre tiene el largo pedido,
// conserva el BIN como prefijo y pasa la verificación Luhn.
func TestNumber_LargoYLuhn(t *testing.T) {
	gen := cardnumber.NewGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 500; i++ {
		number := gen.Number("124578", 12)
		require.Len(t, number, 12)
		assert.Equal(t, "124578", number[:6])
		assert.True(t, cardnumber.Valid(number), "el número %s debe pasar Luhn", number)
	}
}

// TestNumber_Determinista: con la misma semilla se genera la misma secuencia.
func TestNumber_Determinista(t *testing.T) {
	a := cardnumber.NewGenerator(rand.New(rand.NewSource(7)))
	b := cardnumber.NewGenerator(rand.New(rand.NewSource(7)))

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Number("124578", 12), b.Number("124578", 12))
	}
}

// TestSecurityCode: solo dígitos y el largo pedido.
func TestSecurityCode(t *testing.T) {
	gen := cardnumber.NewGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		code := gen.SecurityCode(3)
		require.Len(t, code, 3)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "el código %q debe ser numérico", code)
		}
	}
}

func TestValid(t *testing.T) {
	assert.True(t, cardnumber.Valid("4539148803436467")) // Visa de prueba
	assert.False(t, cardnumber.Valid("4539148803436468"))
	assert.False(t, cardnumber.Valid("4539a48803436467"))
	assert.False(t, cardnumber.Valid(""))
}
