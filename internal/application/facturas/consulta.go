package facturas

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
	"github.com/tu-usuario/facturas-pro/internal/domain/valor"
)

// ConsultaUseCase listado, búsqueda y detalle de facturas.
type ConsultaUseCase struct {
	facturaRepo repository.FacturaRepository
}

// NewConsultaUseCase construye el caso de uso.
func NewConsultaUseCase(facturaRepo repository.FacturaRepository) *ConsultaUseCase {
	return &ConsultaUseCase{facturaRepo: facturaRepo}
}

// Listar devuelve la página de facturas que cumple el filtro, con los valores
// derivados calculados al vuelo para las columnas del listado.
func (uc *ConsultaUseCase) Listar(ctx context.Context, in dto.FiltroFacturasRequest) (*dto.ListadoFacturasResponse, error) {
	in.DefaultPage()
	if in.Clasificacion != "" && !entity.ClasificacionValida(in.Clasificacion) {
		return nil, domain.ErrInvalidInput
	}
	if in.EstadoPago != "" && !entity.EstadoPagoValido(in.EstadoPago) {
		return nil, domain.ErrInvalidInput
	}

	filtro := repository.FiltroFacturas{
		Clasificacion: in.Clasificacion,
		SinClasificar: in.SinClasificar,
		EstadoPago:    in.EstadoPago,
		EmisorNIT:     in.EmisorNIT,
		Busqueda:      NormalizarBusqueda(in.Busqueda),
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	items, total, err := uc.facturaRepo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListadoFacturasResponse{
		Items: make([]dto.FacturaResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, f := range items {
		resp.Items = append(resp.Items, ArmarFacturaResponse(f))
	}
	return resp, nil
}

// Detalle devuelve una factura con sus valores derivados.
func (uc *ConsultaUseCase) Detalle(ctx context.Context, id string) (*dto.FacturaResponse, error) {
	f, err := uc.facturaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	resp := ArmarFacturaResponse(f)
	return &resp, nil
}

// ArmarFacturaResponse mapea la entidad al DTO calculando los derivados con el
// motor de cálculo (retención, valor real, total efectivo).
func ArmarFacturaResponse(f *entity.Factura) dto.FacturaResponse {
	return dto.FacturaResponse{
		ID:                   f.ID,
		NumeroFactura:        f.NumeroFactura,
		EmisorNombre:         f.EmisorNombre,
		EmisorNIT:            f.EmisorNIT,
		FechaEmision:         f.FechaEmision,
		FechaVencimiento:     f.FechaVencimiento,
		TotalAPagar:          f.TotalAPagar,
		TotalSinIVA:          f.TotalSinIVA,
		FacturaIVA:           f.FacturaIVA,
		TieneRetencion:       f.TieneRetencion,
		MontoRetencion:       f.MontoRetencion,
		PorcentajeProntoPago: f.PorcentajeProntoPago,
		Clasificacion:        f.Clasificacion,
		EstadoPago:           f.EstadoPago,
		NumeroSerie:          f.NumeroSerie,
		ValorRetencion:       valor.Retencion(f),
		ValorRealAPagar:      valor.RealAPagar(f),
		TotalEfectivo:        valor.TotalEfectivo(f),
	}
}

// NormalizarBusqueda prepara el texto de búsqueda-mientras-escribe: minúsculas
// y sin tildes, para que "perez" encuentre "Pérez".
func NormalizarBusqueda(q string) string {
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, q)
	if err != nil {
		return q
	}
	return out
}
