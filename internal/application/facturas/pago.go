package facturas

import (
	"context"

	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
)

// PagoUseCase actualiza el estado de pago de una factura.
type PagoUseCase struct {
	facturaRepo repository.FacturaRepository
}

// NewPagoUseCase construye el caso de uso.
func NewPagoUseCase(facturaRepo repository.FacturaRepository) *PagoUseCase {
	return &PagoUseCase{facturaRepo: facturaRepo}
}

// ActualizarEstado cambia el estado de pago (pendiente, pagada, vencida).
func (uc *PagoUseCase) ActualizarEstado(ctx context.Context, facturaID string, in dto.PagoRequest) (*dto.FacturaResponse, error) {
	if !entity.EstadoPagoValido(in.EstadoPago) {
		return nil, domain.ErrInvalidInput
	}
	f, err := uc.facturaRepo.GetByID(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.facturaRepo.UpdateEstadoPago(ctx, facturaID, in.EstadoPago); err != nil {
		return nil, err
	}
	f.EstadoPago = in.EstadoPago

	resp := ArmarFacturaResponse(f)
	return &resp, nil
}
