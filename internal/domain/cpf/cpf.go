// Package cpf valida el CPF brasileño (Cadastro de Pessoas Físicas):
// 11 dígitos donde los dos últimos son dígitos verificadores calculados
// por suma ponderada módulo 11 sobre los nueve (y diez) primeros.
package cpf

// IsValid reporta si s es un CPF válido. Nunca retorna error: cadenas vacías,
// de largo distinto a 11, con todos los caracteres iguales o con caracteres
// no numéricos se consideran inválidas.
func IsValid(s string) bool {
	if len(s) != 11 {
		return false
	}
	allEqual := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		if c != s[0] {
			allEqual = false
		}
	}
	if allEqual {
		return false
	}

	// Primer dígito verificador: pesos 10..2 sobre las posiciones 0..8.
	d10 := checkDigit(s, 9, 10)
	// Segundo: pesos 11..2 sobre las posiciones 0..9 (incluye el primer dígito).
	d11 := checkDigit(s, 10, 11)

	return d10 == s[9] && d11 == s[10]
}

// checkDigit calcula un dígito verificador sobre s[0:n] con peso inicial w.
// El resultado 11 - (suma mod 11) se mapea a '0' cuando da 10 u 11.
func checkDigit(s string, n, w int) byte {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(s[i]-'0') * w
		w--
	}
	r := 11 - sum%11
	if r == 10 || r == 11 {
		return '0'
	}
	return byte(r) + '0'
}
