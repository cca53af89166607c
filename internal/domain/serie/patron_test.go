package serie_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturas-pro/internal/domain/serie"
)

// ── Analizar ──────────────────────────────────────────────────────────────────

func TestAnalizar_PrefijoConGuionEsComplejo(t *testing.T) {
	p := serie.Analizar("FAC-0059")

	assert.Equal(t, "FAC-", p.Prefijo)
	assert.Equal(t, 59, p.Numero)
	assert.Equal(t, "0059", p.Digitos)
	assert.Equal(t, "", p.Sufijo)
	assert.Equal(t, serie.TipoComplejo, p.Tipo)
}

func TestAnalizar_SoloDigitosEsNumerico(t *testing.T) {
	p := serie.Analizar("59")

	assert.Equal(t, "", p.Prefijo)
	assert.Equal(t, 59, p.Numero)
	assert.Equal(t, "", p.Sufijo)
	assert.Equal(t, serie.TipoNumerico, p.Tipo)
	assert.True(t, p.EsPuramenteNumerico())
}

func TestAnalizar_PrefijoCortoEsAlfanumerico(t *testing.T) {
	p := serie.Analizar("A59")
	assert.Equal(t, "A", p.Prefijo)
	assert.Equal(t, 59, p.Numero)
	assert.Equal(t, serie.TipoAlfanumerico, p.Tipo)
}

func TestAnalizar_CorridaMasALaDerecha(t *testing.T) {
	// "F2-0010": la corrida elegida es "0010", no el "2" del prefijo
	p := serie.Analizar("F2-0010")
	assert.Equal(t, "F2-", p.Prefijo)
	assert.Equal(t, 10, p.Numero)
	assert.Equal(t, "0010", p.Digitos)
}

func TestAnalizar_ConSufijo(t *testing.T) {
	p := serie.Analizar("59-B")
	assert.Equal(t, "", p.Prefijo)
	assert.Equal(t, 59, p.Numero)
	assert.Equal(t, "-B", p.Sufijo)
	assert.Equal(t, serie.TipoComplejo, p.Tipo)
}

func TestAnalizar_CadenaVacia(t *testing.T) {
	p := serie.Analizar("")
	assert.Equal(t, 0, p.Numero)
}

func TestAnalizar_SinDigitos(t *testing.T) {
	// Sin corrida numérica: la cadena completa es el prefijo y el número arranca en 1
	p := serie.Analizar("ABC")
	assert.Equal(t, "ABC", p.Prefijo)
	assert.Equal(t, 1, p.Numero)
}

// ── Generar / Siguiente ───────────────────────────────────────────────────────

func TestSiguiente_ConservaElRellenoDeCeros(t *testing.T) {
	p := serie.Analizar("FAC-003")
	assert.Equal(t, "FAC-004", p.Siguiente())
}

func TestGenerar_ElAnchoNaturalGanaAlDesbordar(t *testing.T) {
	p := serie.Analizar("FAC-099")
	assert.Equal(t, "FAC-100", p.Generar(100))
}

func TestGenerar_SufijoSeConserva(t *testing.T) {
	p := serie.Analizar("0012-A")
	assert.Equal(t, "0013-A", p.Siguiente())
}

// ── DetectarPatronComun ───────────────────────────────────────────────────────

func analizarTodas(t *testing.T, series ...string) []serie.Patron {
	t.Helper()
	out := make([]serie.Patron, 0, len(series))
	for _, s := range series {
		out = append(out, serie.Analizar(s))
	}
	return out
}

func TestDetectarPatronComun_GanaElMasFrecuente(t *testing.T) {
	patrones := analizarTodas(t, "FAC-001", "FAC-002", "FAC-003", "X9")

	p, ok := serie.DetectarPatronComun(patrones)
	require.True(t, ok)
	assert.Equal(t, "FAC-", p.Prefijo)
	assert.Equal(t, 3, p.Numero, "dentro del grupo ganador se elige el mayor número")
}

func TestDetectarPatronComun_EmpateSeResuelvePorMayorNumero(t *testing.T) {
	// Dos grupos con frecuencia 2: gana el que contiene el número más alto
	patrones := analizarTodas(t, "A-001", "A-002", "B-040", "B-041")

	p, ok := serie.DetectarPatronComun(patrones)
	require.True(t, ok)
	assert.Equal(t, "B-", p.Prefijo)
	assert.Equal(t, 41, p.Numero)
}

func TestDetectarPatronComun_EmpateTotalGanaElPrimeroVisto(t *testing.T) {
	patrones := analizarTodas(t, "A-007", "B-007")

	p, ok := serie.DetectarPatronComun(patrones)
	require.True(t, ok)
	assert.Equal(t, "A-", p.Prefijo, "comparación estrictamente mayor: el primero visto gana")
}

func TestDetectarPatronComun_ListaVacia(t *testing.T) {
	_, ok := serie.DetectarPatronComun(nil)
	assert.False(t, ok)
}

// ── MayorNumero ───────────────────────────────────────────────────────────────

func TestMayorNumero(t *testing.T) {
	patrones := analizarTodas(t, "FAC-010", "58", "REC-0200")

	p, ok := serie.MayorNumero(patrones)
	require.True(t, ok)
	assert.Equal(t, 200, p.Numero)
	assert.Equal(t, "REC-", p.Prefijo)
}

func TestMayorNumero_EmpateGanaElPrimeroVisto(t *testing.T) {
	patrones := analizarTodas(t, "A-050", "B-050")

	p, ok := serie.MayorNumero(patrones)
	require.True(t, ok)
	assert.Equal(t, "A-", p.Prefijo)
}
