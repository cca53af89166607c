// Package backfill implementa la migración única que puebla el campo
// valor_real_a_pagar de las facturas históricas.
package backfill

import (
	"context"
	"fmt"

	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
	"github.com/tu-usuario/facturas-pro/internal/domain/valor"
	"github.com/tu-usuario/facturas-pro/pkg/logger"
)

// TamanoLoteDefault filas procesadas por lote.
const TamanoLoteDefault = 200

// Resultado reporta lo procesado antes de terminar (o de fallar).
type Resultado struct {
	LotesCompletos int
	FilasEscritas  int
}

// UseCase recorre las facturas sin valor real persistido y lo calcula con el
// motor de cálculo.
//
// Idempotente: solo selecciona filas con valor_real_a_pagar en NULL, así que
// relanzarlo no reescribe nada ya poblado. El fallo de un lote aborta el
// trabajo, pero los lotes anteriores ya quedaron confirmados; el Resultado
// devuelto junto al error dice exactamente cuántos lotes y filas entraron.
type UseCase struct {
	facturaRepo repository.FacturaRepository
	tamanoLote  int
	log         *logger.Logger
}

// New construye el caso de uso. tamanoLote <= 0 usa TamanoLoteDefault.
func New(facturaRepo repository.FacturaRepository, tamanoLote int, log *logger.Logger) *UseCase {
	if tamanoLote <= 0 {
		tamanoLote = TamanoLoteDefault
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{facturaRepo: facturaRepo, tamanoLote: tamanoLote, log: log.Modulo("backfill")}
}

// Ejecutar procesa lotes hasta agotar las facturas pendientes.
func (uc *UseCase) Ejecutar(ctx context.Context) (Resultado, error) {
	var res Resultado
	for {
		pendientes, err := uc.facturaRepo.ListSinValorReal(ctx, uc.tamanoLote)
		if err != nil {
			return res, fmt.Errorf("backfill: listar lote %d: %w", res.LotesCompletos+1, err)
		}
		if len(pendientes) == 0 {
			uc.log.Info().Int("lotes", res.LotesCompletos).Int("filas", res.FilasEscritas).Msg("backfill completo")
			return res, nil
		}

		valores := make([]repository.ValorRealCalculado, 0, len(pendientes))
		for _, f := range pendientes {
			// RealEfectivo resuelve notas de crédito y deducciones en un paso;
			// una nota de crédito ligada queda con valor real 0.
			valores = append(valores, repository.ValorRealCalculado{FacturaID: f.ID, Valor: valor.RealEfectivo(f)})
		}

		if err := uc.facturaRepo.UpdateValoresReales(ctx, valores); err != nil {
			return res, fmt.Errorf("backfill: escribir lote %d (%d filas, primera factura %s): %w",
				res.LotesCompletos+1, len(valores), valores[0].FacturaID, err)
		}
		res.LotesCompletos++
		res.FilasEscritas += len(valores)
		uc.log.Info().Int("lote", res.LotesCompletos).Int("filas", len(valores)).Msg("lote confirmado")
	}
}
