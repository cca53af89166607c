// Package serie analiza los números de serie históricos de un proveedor para
// inferir su convención de numeración y generar el siguiente candidato.
package serie

import (
	"fmt"
	"strconv"
	"strings"
)

// Tipo clasifica la forma de un número de serie.
type Tipo string

const (
	TipoNumerico     Tipo = "numerico"     // solo dígitos ("59")
	TipoAlfanumerico Tipo = "alfanumerico" // prefijo/sufijo cortos sin guion ("A59")
	TipoComplejo     Tipo = "complejo"     // prefijo o sufijo con guion o de más de 3 caracteres ("FAC-0059")
)

// Patron es la descomposición de un número de serie en prefijo, corrida
// numérica y sufijo. La corrida elegida es la maximal más a la derecha.
type Patron struct {
	Prefijo string
	Numero  int
	Digitos string // corrida original, conserva los ceros a la izquierda
	Sufijo  string
	Tipo    Tipo
}

// Analizar descompone un número de serie. Cadena vacía produce Numero 0;
// una cadena sin dígitos se trata como prefijo completo con Numero 1.
func Analizar(s string) Patron {
	s = strings.TrimSpace(s)
	if s == "" {
		return clasificar(Patron{})
	}

	fin := -1
	for i := len(s) - 1; i >= 0; i-- {
		if esDigito(s[i]) {
			fin = i
			break
		}
	}
	if fin < 0 {
		return clasificar(Patron{Prefijo: s, Numero: 1})
	}

	inicio := fin
	for inicio > 0 && esDigito(s[inicio-1]) {
		inicio--
	}
	digitos := s[inicio : fin+1]
	n, err := strconv.Atoi(digitos)
	if err != nil {
		// corrida más larga que un int: se trata como 0 para no descartar el patrón
		n = 0
	}
	return clasificar(Patron{
		Prefijo: s[:inicio],
		Numero:  n,
		Digitos: digitos,
		Sufijo:  s[fin+1:],
	})
}

func clasificar(p Patron) Patron {
	switch {
	case p.Prefijo == "" && p.Sufijo == "":
		p.Tipo = TipoNumerico
	case strings.Contains(p.Prefijo, "-") || strings.Contains(p.Sufijo, "-") ||
		len(p.Prefijo) > 3 || len(p.Sufijo) > 3:
		p.Tipo = TipoComplejo
	default:
		p.Tipo = TipoAlfanumerico
	}
	return p
}

// EsPuramenteNumerico indica una serie sin prefijo ni sufijo.
func (p Patron) EsPuramenteNumerico() bool {
	return p.Prefijo == "" && p.Sufijo == ""
}

// Generar arma el candidato prefijo + número + sufijo. El número se rellena
// con ceros al ancho de la corrida original; si crece más allá gana el ancho
// natural ("FAC-099" genera "FAC-100").
func (p Patron) Generar(n int) string {
	ancho := len(p.Digitos)
	if ancho == 0 {
		ancho = len(strconv.Itoa(p.Numero))
	}
	return fmt.Sprintf("%s%0*d%s", p.Prefijo, ancho, n, p.Sufijo)
}

// Siguiente genera el candidato inmediato (Numero + 1).
func (p Patron) Siguiente() string {
	return p.Generar(p.Numero + 1)
}

// DetectarPatronComun elige la agrupación (prefijo, sufijo) más frecuente.
// Empates de frecuencia se resuelven por el mayor valor numérico; dentro del
// grupo ganador se devuelve el patrón de mayor número. Las comparaciones son
// estrictas: ante igualdad gana el primero visto.
func DetectarPatronComun(patrones []Patron) (Patron, bool) {
	if len(patrones) == 0 {
		return Patron{}, false
	}

	type grupo struct {
		cuenta int
		mejor  Patron // mayor Numero dentro del grupo
	}
	grupos := map[[2]string]*grupo{}
	var orden [][2]string

	for _, p := range patrones {
		k := [2]string{p.Prefijo, p.Sufijo}
		g, ok := grupos[k]
		if !ok {
			g = &grupo{mejor: p}
			grupos[k] = g
			orden = append(orden, k)
		} else if p.Numero > g.mejor.Numero {
			g.mejor = p
		}
		g.cuenta++
	}

	ganador := grupos[orden[0]]
	for _, k := range orden[1:] {
		g := grupos[k]
		if g.cuenta > ganador.cuenta ||
			(g.cuenta == ganador.cuenta && g.mejor.Numero > ganador.mejor.Numero) {
			ganador = g
		}
	}
	return ganador.mejor, true
}

// MayorNumero devuelve el patrón con el mayor valor numérico de la lista.
// Comparación estrictamente mayor: el primero visto gana los empates.
func MayorNumero(patrones []Patron) (Patron, bool) {
	if len(patrones) == 0 {
		return Patron{}, false
	}
	mejor := patrones[0]
	for _, p := range patrones[1:] {
		if p.Numero > mejor.Numero {
			mejor = p
		}
	}
	return mejor, true
}

func esDigito(b byte) bool {
	return b >= '0' && b <= '9'
}
