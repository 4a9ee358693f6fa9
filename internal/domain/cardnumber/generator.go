// Package cardnumber genera números de tarjeta sintéticos (BIN + dígitos
// aleatorios + dígito verificador Luhn) y códigos de seguridad.
//
// La fuente de aleatoriedad se inyecta en el constructor; no es
// criptográficamente segura y no necesita serlo: los números son datos
// sintéticos de prueba, no PANs reales.
package cardnumber

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Generator produce números de tarjeta y códigos de seguridad.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator construye el generador con la fuente dada.
// Con rnd nil se usa una fuente sembrada con el reloj del sistema.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// Number genera un número de tarjeta de largo total length: el BIN, luego
// length-len(bin)-1 dígitos aleatorios y al final el dígito verificador Luhn.
func (g *Generator) Number(bin string, length int) string {
	var b strings.Builder
	b.WriteString(bin)
	b.WriteString(g.randomDigits(length - len(bin) - 1))

	payload := b.String()
	b.WriteByte(checkDigit(payload) + '0')
	return b.String()
}

// SecurityCode genera un código de seguridad de length dígitos aleatorios.
func (g *Generator) SecurityCode(length int) string {
	return g.randomDigits(length)
}

func (g *Generator) randomDigits(n int) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte(g.rnd.Intn(10)) + '0')
	}
	return b.String()
}

// checkDigit calcula el dígito verificador Luhn del payload: duplica los
// dígitos en índice par (desde la izquierda), resta 9 a los mayores que 9,
// suma todo y devuelve (10 - suma mod 10) mod 10.
func checkDigit(payload string) byte {
	sum := 0
	for i := 0; i < len(payload); i++ {
		d := int(payload[i] - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return byte((10 - sum%10) % 10)
}

// Valid reporta si number pasa la verificación Luhn completa
// (duplicando cada segundo dígito desde la derecha).
func Valid(number string) bool {
	if number == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		c := number[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
