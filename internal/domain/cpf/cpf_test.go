package cpf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/creditcard-api/internal/domain/cpf"
)

// TestIsValid_CPFReal verifica el algoritmo con CPFs de checksum conocido.
func TestIsValid_CPFReal(t *testing.T) {
	assert.True(t, cpf.IsValid("71190024063"))
	assert.True(t, cpf.IsValid("12345678909"))
}

// TestIsValid_ChecksumIncorrecto: 11 dígitos pero los verificadores no cuadran.
func TestIsValid_ChecksumIncorrecto(t *testing.T) {
	assert.False(t, cpf.IsValid("12345678900"))
	assert.False(t, cpf.IsValid("71190024064"))
}

// TestIsValid_DigitosRepetidos: todos los dígitos iguales es inválido aunque
// el checksum matemáticamente cierre (ej. "00000000000").
func TestIsValid_DigitosRepetidos(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		s := strings.Repeat(string(d), 11)
		assert.False(t, cpf.IsValid(s), "CPF %s debe ser inválido", s)
	}
}

func TestIsValid_FormatoInvalido(t *testing.T) {
	assert.False(t, cpf.IsValid(""))
	assert.False(t, cpf.IsValid("7119002406"))   // 10 dígitos
	assert.False(t, cpf.IsValid("711900240631")) // 12 dígitos
	assert.False(t, cpf.IsValid("7119002406a"))  // caracter no numérico
	assert.False(t, cpf.IsValid("711.900.240")) // puntuación
}
