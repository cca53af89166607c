package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestParseNotas_Vinculo(t *testing.T) {
	n := entity.ParseNotas(strPtr(`{"tipo":"nota_credito","factura_original_id":"f-10"}`))

	assert.Equal(t, entity.NotasVinculoNotaCredito, n.Tipo)
	assert.Equal(t, "f-10", n.FacturaOriginalID)
}

func TestParseNotas_CreditosAplicados(t *testing.T) {
	n := entity.ParseNotas(strPtr(`{"notas_credito":[{"factura_id":"nc-1","valor_descuento":1000},{"valor_descuento":500}]}`))

	require.Equal(t, entity.NotasCreditosAplicados, n.Tipo)
	require.Len(t, n.Creditos, 2)
	assert.True(t, decimal.NewFromInt(1000).Equal(n.Creditos[0].ValorDescuento))
	assert.Equal(t, "nc-1", n.Creditos[0].FacturaID)
}

func TestParseNotas_TotalConDescuentos(t *testing.T) {
	n := entity.ParseNotas(strPtr(`{"total_con_descuentos":7200.50}`))

	require.Equal(t, entity.NotasTotalConDescuentos, n.Tipo)
	assert.True(t, decimal.RequireFromString("7200.50").Equal(n.TotalConDescuentos))
}

func TestParseNotas_PrecedenciaDelVinculo(t *testing.T) {
	// Si el JSON trae vínculo y lista a la vez, el vínculo manda
	raw := `{"tipo":"nota_credito","factura_original_id":"f-10","notas_credito":[{"valor_descuento":100}]}`
	n := entity.ParseNotas(strPtr(raw))

	assert.Equal(t, entity.NotasVinculoNotaCredito, n.Tipo)
}

func TestParseNotas_EntradasInvalidasProducenNinguna(t *testing.T) {
	casos := []*string{
		nil,
		strPtr(""),
		strPtr("  "),
		strPtr("pendiente de revisar"),
		strPtr(`{"tipo":"nota_credito"}`), // vínculo incompleto: sin factura_original_id
		strPtr(`{invalido`),
	}
	for _, raw := range casos {
		n := entity.ParseNotas(raw)
		assert.Equal(t, entity.NotasNinguna, n.Tipo)
	}
}

func TestNotasVinculoJSON_RoundTrip(t *testing.T) {
	raw := entity.NotasVinculoJSON("f-10", "FV-1234")
	n := entity.ParseNotas(&raw)

	assert.Equal(t, entity.NotasVinculoNotaCredito, n.Tipo)
	assert.Equal(t, "f-10", n.FacturaOriginalID)
}

func TestAgregarCreditoAplicado_ConservaLosPrevios(t *testing.T) {
	previo := strPtr(`{"notas_credito":[{"factura_id":"nc-1","valor_descuento":1000}]}`)
	raw := entity.AgregarCreditoAplicado(previo, entity.NotaCreditoAplicada{
		FacturaID:      "nc-2",
		ValorDescuento: decimal.NewFromInt(500),
	})

	n := entity.ParseNotas(&raw)
	require.Equal(t, entity.NotasCreditosAplicados, n.Tipo)
	require.Len(t, n.Creditos, 2)
	assert.Equal(t, "nc-2", n.Creditos[1].FacturaID)
}

func TestAgregarCreditoAplicado_SobreNotasVacias(t *testing.T) {
	raw := entity.AgregarCreditoAplicado(nil, entity.NotaCreditoAplicada{
		ValorDescuento: decimal.NewFromInt(300),
	})

	n := entity.ParseNotas(&raw)
	require.Equal(t, entity.NotasCreditosAplicados, n.Tipo)
	require.Len(t, n.Creditos, 1)
}
