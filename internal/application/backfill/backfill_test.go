package backfill_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/facturas-pro/internal/application/backfill"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
)

// repoBackfill implementa solo lo que el trabajo usa; el resto entra en pánico
// para que un cambio de contrato se note en los tests.
type repoBackfill struct {
	repository.FacturaRepository

	facturas   []*entity.Factura
	errEscribe error
	escrituras int
}

func (r *repoBackfill) ListSinValorReal(_ context.Context, limit int) ([]*entity.Factura, error) {
	var out []*entity.Factura
	for _, f := range r.facturas {
		if f.ValorRealAPagar != nil {
			continue
		}
		out = append(out, f)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *repoBackfill) UpdateValoresReales(_ context.Context, valores []repository.ValorRealCalculado) error {
	if r.errEscribe != nil {
		return r.errEscribe
	}
	r.escrituras++
	porID := map[string]decimal.Decimal{}
	for _, v := range valores {
		porID[v.FacturaID] = v.Valor
	}
	for _, f := range r.facturas {
		if v, ok := porID[f.ID]; ok {
			val := v
			f.ValorRealAPagar = &val
		}
	}
	return nil
}

func facturaSinValor(id string, total int64) *entity.Factura {
	return &entity.Factura{
		ID:            id,
		NumeroFactura: "FV-" + id,
		EmisorNIT:     "9001234567",
		FechaEmision:  time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		TotalAPagar:   decimal.NewFromInt(total),
		EstadoPago:    entity.EstadoPagoPendiente,
	}
}

func TestEjecutar_PueblaLasFilasPendientes(t *testing.T) {
	repo := &repoBackfill{facturas: []*entity.Factura{
		facturaSinValor("f1", 1190000),
		facturaSinValor("f2", 500000),
	}}
	uc := backfill.New(repo, 10, nil)

	res, err := uc.Ejecutar(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, res.LotesCompletos)
	assert.Equal(t, 2, res.FilasEscritas)
	require.NotNil(t, repo.facturas[0].ValorRealAPagar)
	assert.True(t, decimal.NewFromInt(1190000).Equal(*repo.facturas[0].ValorRealAPagar))
}

func TestEjecutar_DescuentaRetencionYCreditos(t *testing.T) {
	f := facturaSinValor("f1", 1190000)
	base := decimal.NewFromInt(1000000)
	ret := decimal.RequireFromString("2.5")
	si := true
	f.TotalSinIVA = &base
	f.MontoRetencion = &ret
	f.TieneRetencion = &si
	notas := `{"notas_credito":[{"factura_id":"nc1","numero_factura":"NC-1","valor_descuento":90000}]}`
	f.Notas = &notas
	repo := &repoBackfill{facturas: []*entity.Factura{f}}

	_, err := backfill.New(repo, 0, nil).Ejecutar(context.Background())

	require.NoError(t, err)
	// 1190000 - 90000 (crédito) - 25000 (retención sobre la base) = 1075000
	assert.True(t, decimal.NewFromInt(1075000).Equal(*f.ValorRealAPagar))
}

func TestEjecutar_EsIdempotente(t *testing.T) {
	repo := &repoBackfill{facturas: []*entity.Factura{facturaSinValor("f1", 100)}}
	uc := backfill.New(repo, 10, nil)

	_, err := uc.Ejecutar(context.Background())
	require.NoError(t, err)

	res, err := uc.Ejecutar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.FilasEscritas, "la segunda corrida no encuentra filas en NULL")
	assert.Equal(t, 1, repo.escrituras)
}

func TestEjecutar_ProcesaVariosLotes(t *testing.T) {
	repo := &repoBackfill{facturas: []*entity.Factura{
		facturaSinValor("f1", 100),
		facturaSinValor("f2", 200),
		facturaSinValor("f3", 300),
	}}

	res, err := backfill.New(repo, 2, nil).Ejecutar(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.LotesCompletos)
	assert.Equal(t, 3, res.FilasEscritas)
}

func TestEjecutar_ElFalloDeUnLoteAborta(t *testing.T) {
	repo := &repoBackfill{
		facturas:   []*entity.Factura{facturaSinValor("f1", 100)},
		errEscribe: errors.New("deadlock detectado"),
	}

	res, err := backfill.New(repo, 10, nil).Ejecutar(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "f1", "el error identifica la primera factura del lote fallido")
	assert.Equal(t, 0, res.LotesCompletos)
	assert.Equal(t, 0, res.FilasEscritas)
}
