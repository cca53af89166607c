// Package analytics contiene el caso de uso de las tarjetas de estadísticas
// del panel principal.
package analytics

import (
	"context"

	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
)

// DashboardUseCase arma el resumen del panel.
//
// Fuente de datos: FacturaRepository.Resumen (consulta read-only agregada);
// no recorre facturas una a una.
type DashboardUseCase struct {
	facturaRepo repository.FacturaRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(facturaRepo repository.FacturaRepository) *DashboardUseCase {
	return &DashboardUseCase{facturaRepo: facturaRepo}
}

// Resumen devuelve los agregados para las tarjetas del dashboard.
func (uc *DashboardUseCase) Resumen(ctx context.Context) (*dto.ResumenDashboardDTO, error) {
	r, err := uc.facturaRepo.Resumen(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenDashboardDTO{
		TotalFacturas:      r.Total,
		SinClasificar:      r.SinClasificar,
		Mercancia:          r.Mercancia,
		Gasto:              r.Gasto,
		Sistematizada:      r.Sistematizada,
		NotasCredito:       r.NotasCredito,
		PendientesPago:     r.PendientesPago,
		Vencidas:           r.Vencidas,
		MontoPendiente:     r.MontoPendiente,
		MontoRealPendiente: r.MontoRealPendiente,
	}, nil
}
