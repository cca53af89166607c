// Package nit valida y normaliza NITs colombianos (identificación tributaria
// del emisor). El dígito de verificación sigue el algoritmo módulo 11 de la
// DIAN (Orden Administrativa 4 de 1989).
package nit

import (
	"fmt"
	"unicode"
)

// pesos aplicados a los 9 primeros dígitos del NIT, de izquierda a derecha.
var pesos = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Normalizar deja solo los dígitos del NIT ("900.123.456-7" -> "9001234567").
func Normalizar(nit string) string {
	digits := soloDigitos(nit)
	return string(digits)
}

// DigitoVerificacion calcula el dígito de verificación para los 9 primeros
// dígitos del NIT.
func DigitoVerificacion(nit string) (byte, error) {
	digits := soloDigitos(nit)
	if len(digits) < 9 {
		return 0, fmt.Errorf("nit: se requieren al menos 9 dígitos, se encontraron %d", len(digits))
	}
	var sum int
	for i, d := range digits[:9] {
		sum += int(d-'0') * pesos[i]
	}
	resto := sum % 11
	if resto == 0 || resto == 1 {
		return byte('0' + resto), nil
	}
	return byte('0' + (11 - resto)), nil
}

// Validar verifica que el NIT (con o sin puntos/guiones) tenga un dígito de
// verificación correcto. Acepta "900123456-7", "900.123.456-7" o "9001234567".
func Validar(nit string) error {
	digits := soloDigitos(nit)
	if len(digits) != 10 {
		return fmt.Errorf("nit: se esperan 10 dígitos incluyendo el de verificación, se recibieron %d", len(digits))
	}
	esperado, err := DigitoVerificacion(string(digits))
	if err != nil {
		return err
	}
	if digits[9] != esperado {
		return fmt.Errorf("nit: dígito de verificación inválido: esperado %c, recibido %c", esperado, digits[9])
	}
	return nil
}

func soloDigitos(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
