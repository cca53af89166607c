package valor_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/valor"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// facturaBase: total 1.190.000, base 1.000.000, IVA 190.000 (caso típico 19%).
func facturaBase() *entity.Factura {
	return &entity.Factura{
		ID:          "f-001",
		TotalAPagar: dec("1190000"),
		TotalSinIVA: decPtr("1000000"),
		FacturaIVA:  decPtr("190000"),
	}
}

// ── BaseGravable ──────────────────────────────────────────────────────────────

func TestBaseGravable_UsaTotalSinIVACuandoExiste(t *testing.T) {
	f := facturaBase()
	assert.True(t, dec("1000000").Equal(valor.BaseGravable(f)))
}

func TestBaseGravable_RestaIVACuandoNoHayTotalSinIVA(t *testing.T) {
	f := facturaBase()
	f.TotalSinIVA = nil
	assert.True(t, dec("1000000").Equal(valor.BaseGravable(f)))
}

func TestBaseGravable_IVAAusenteSeTrataComoCero(t *testing.T) {
	f := &entity.Factura{TotalAPagar: dec("500000")}
	assert.True(t, dec("500000").Equal(valor.BaseGravable(f)))
}

// ── Retencion ─────────────────────────────────────────────────────────────────

func TestRetencion_CeroSinPorcentaje(t *testing.T) {
	f := facturaBase()
	assert.True(t, valor.Retencion(f).IsZero(), "sin monto_retencion la retención debe ser 0")

	f.MontoRetencion = decPtr("0")
	assert.True(t, valor.Retencion(f).IsZero(), "porcentaje 0 significa no aplica")
}

func TestRetencion_SobreBaseGravable(t *testing.T) {
	f := facturaBase()
	f.MontoRetencion = decPtr("2.5")
	// 1.000.000 * 2.5% = 25.000 — sobre la base pretributaria, no sobre el total
	assert.True(t, dec("25000").Equal(valor.Retencion(f)))
}

func TestRetencion_BaseDerivadaDelTotalMenosIVA(t *testing.T) {
	f := facturaBase()
	f.TotalSinIVA = nil
	f.MontoRetencion = decPtr("4")
	assert.True(t, dec("40000").Equal(valor.Retencion(f)))
}

// ── RealAPagar ────────────────────────────────────────────────────────────────

func TestRealAPagar_SinDeduccionesEsElTotal(t *testing.T) {
	f := facturaBase()
	assert.True(t, f.TotalAPagar.Equal(valor.RealAPagar(f)))
}

func TestRealAPagar_RetencionRequiereBanderaYPorcentaje(t *testing.T) {
	f := facturaBase()
	f.MontoRetencion = decPtr("2.5")
	// Sin tiene_retencion la retención no se descuenta
	assert.True(t, f.TotalAPagar.Equal(valor.RealAPagar(f)))

	f.TieneRetencion = boolPtr(true)
	assert.True(t, dec("1165000").Equal(valor.RealAPagar(f)))
}

// TestRealAPagar_DeduccionesNoSeEncadenan documenta el comportamiento heredado:
// retención y pronto pago se calculan ambos sobre la base original y se restan
// por separado del total nominal. El pronto pago NO se aplica al monto ya
// retenido.
func TestRealAPagar_DeduccionesNoSeEncadenan(t *testing.T) {
	f := facturaBase()
	f.TieneRetencion = boolPtr(true)
	f.MontoRetencion = decPtr("2.5")
	f.PorcentajeProntoPago = decPtr("5")

	// 1.190.000 - 25.000 (retención) - 50.000 (pronto pago) = 1.115.000
	// Encadenado daría 1.190.000 - 25.000 - 5% de (1.000.000 - 25.000) = 1.116.250
	assert.True(t, dec("1115000").Equal(valor.RealAPagar(f)))
}

func TestRealAPagar_NuncaSuperaElTotal(t *testing.T) {
	f := facturaBase()
	f.TieneRetencion = boolPtr(true)
	f.MontoRetencion = decPtr("3.5")
	f.PorcentajeProntoPago = decPtr("2")

	real := valor.RealAPagar(f)
	assert.True(t, real.LessThanOrEqual(f.TotalAPagar))
}

// TestRealAPagar_Idempotente: recalcular sobre el mismo registro (como hace el
// backfill tras persistir) produce exactamente el mismo valor.
func TestRealAPagar_Idempotente(t *testing.T) {
	f := facturaBase()
	f.TieneRetencion = boolPtr(true)
	f.MontoRetencion = decPtr("2.5")
	f.PorcentajeProntoPago = decPtr("5")

	v1 := valor.RealAPagar(f)
	persistido := v1
	f.ValorRealAPagar = &persistido
	v2 := valor.RealAPagar(f)

	assert.True(t, v1.Equal(v2))
}

// ── RealEfectivo ──────────────────────────────────────────────────────────────

func TestRealEfectivo_NotaCreditoLigadaValeCero(t *testing.T) {
	f := facturaBase()
	f.Notas = strPtr(`{"tipo":"nota_credito","factura_original_id":"f-999"}`)
	assert.True(t, valor.RealEfectivo(f).IsZero())
}

func TestRealEfectivo_NotaCreditoLigadaConDeduccionesNoEsNegativo(t *testing.T) {
	f := facturaBase()
	f.TieneRetencion = boolPtr(true)
	f.MontoRetencion = decPtr("2.5")
	f.PorcentajeProntoPago = decPtr("5")
	f.Notas = strPtr(`{"tipo":"nota_credito","factura_original_id":"f-999"}`)

	// La nota ligada no debe nada; sus propias deducciones no la bajan de 0
	assert.True(t, valor.RealEfectivo(f).IsZero())
}

func TestRealEfectivo_CombinaCreditosYDeducciones(t *testing.T) {
	f := facturaBase()
	f.TieneRetencion = boolPtr(true)
	f.MontoRetencion = decPtr("2.5")
	f.Notas = strPtr(`{"notas_credito":[{"valor_descuento":90000}]}`)

	// (1.190.000 - 90.000 de créditos) - 25.000 de retención = 1.075.000
	assert.True(t, dec("1075000").Equal(valor.RealEfectivo(f)))
}

// ── TotalEfectivo ─────────────────────────────────────────────────────────────

func TestTotalEfectivo_NotaCreditoVinculadaValeCero(t *testing.T) {
	f := facturaBase()
	f.Clasificacion = entity.ClasificacionNotaCredito
	f.Notas = strPtr(`{"tipo":"nota_credito","factura_original_id":"f-999"}`)

	assert.True(t, valor.TotalEfectivo(f).IsZero(),
		"una nota de crédito ligada aporta $0 sin importar su propio total")
}

func TestTotalEfectivo_RestaCreditosAplicados(t *testing.T) {
	f := &entity.Factura{
		TotalAPagar: dec("10000"),
		Notas:       strPtr(`{"notas_credito":[{"valor_descuento":1000},{"valor_descuento":500}]}`),
	}
	assert.True(t, dec("8500").Equal(valor.TotalEfectivo(f)))
}

func TestTotalEfectivo_TotalConDescuentosPrecalculado(t *testing.T) {
	f := &entity.Factura{
		TotalAPagar: dec("10000"),
		Notas:       strPtr(`{"total_con_descuentos":7200}`),
	}
	assert.True(t, dec("7200").Equal(valor.TotalEfectivo(f)))
}

func TestTotalEfectivo_NotasMalFormadasNoAlteranElTotal(t *testing.T) {
	casos := []*string{
		nil,
		strPtr(""),
		strPtr("   "),
		strPtr("revisar con el proveedor"), // texto libre
		strPtr(`{"notas_credito": [`),      // JSON truncado
		strPtr(`[1,2,3]`),                  // JSON de otra forma
	}
	for _, notas := range casos {
		f := &entity.Factura{TotalAPagar: dec("10000"), Notas: notas}
		require.NotPanics(t, func() {
			assert.True(t, dec("10000").Equal(valor.TotalEfectivo(f)))
		})
	}
}
