package facturas

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
	"github.com/tu-usuario/facturas-pro/internal/domain/valor"
	"github.com/tu-usuario/facturas-pro/pkg/nit"
)

// IngresoUseCase crea las facturas que llegan por el webhook de recepción.
// El flujo manual del panel usa el mismo camino.
type IngresoUseCase struct {
	facturaRepo repository.FacturaRepository
}

// NewIngresoUseCase construye el caso de uso.
func NewIngresoUseCase(facturaRepo repository.FacturaRepository) *IngresoUseCase {
	return &IngresoUseCase{facturaRepo: facturaRepo}
}

// Crear registra la factura entrante sin clasificar, con el valor real
// derivado ya sincronizado.
func (uc *IngresoUseCase) Crear(ctx context.Context, in dto.WebhookFacturaRequest) (*dto.FacturaResponse, error) {
	if strings.TrimSpace(in.NumeroFactura) == "" || strings.TrimSpace(in.EmisorNIT) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.TotalAPagar.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	fechaEmision, err := time.Parse("2006-01-02", in.FechaEmision)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	f := &entity.Factura{
		ID:            uuid.New().String(),
		NumeroFactura: strings.TrimSpace(in.NumeroFactura),
		EmisorNombre:  strings.TrimSpace(in.EmisorNombre),
		EmisorNIT:     nit.Normalizar(in.EmisorNIT),
		FechaEmision:  fechaEmision,
		TotalAPagar:   in.TotalAPagar,
		TotalSinIVA:   in.TotalSinIVA,
		FacturaIVA:    in.FacturaIVA,
		EstadoPago:    entity.EstadoPagoPendiente,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if in.FechaVencimiento != "" {
		if v, err := time.Parse("2006-01-02", in.FechaVencimiento); err == nil {
			f.FechaVencimiento = &v
		}
	}
	if in.PDFPath != "" {
		f.PDFPath = &in.PDFPath
	}
	real := valor.RealEfectivo(f)
	f.ValorRealAPagar = &real

	if err := uc.facturaRepo.Create(ctx, f); err != nil {
		return nil, err
	}

	resp := ArmarFacturaResponse(f)
	return &resp, nil
}
