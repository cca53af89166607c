package facturas

import (
	"context"
	"strings"

	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
	"github.com/tu-usuario/facturas-pro/internal/domain/valor"
)

// ClasificarUseCase asigna la clasificación de una factura y, para mercancía,
// el número de serie aceptado o digitado por el usuario.
type ClasificarUseCase struct {
	facturaRepo repository.FacturaRepository
	serieRepo   repository.SerieRepository
	suggester   SerieSuggester
}

// NewClasificarUseCase construye el caso de uso.
func NewClasificarUseCase(
	facturaRepo repository.FacturaRepository,
	serieRepo repository.SerieRepository,
	suggester SerieSuggester,
) *ClasificarUseCase {
	return &ClasificarUseCase{facturaRepo: facturaRepo, serieRepo: serieRepo, suggester: suggester}
}

// Sugerencia consulta el sugeridor para precargar el diálogo de clasificación
// cuando el usuario elige mercancía. nil = sin sugerencia, digitar manualmente.
func (uc *ClasificarUseCase) Sugerencia(ctx context.Context, facturaID string) (*dto.SugerenciaSerieResponse, error) {
	f, err := uc.facturaRepo.GetByID(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	s := uc.suggester.SugerirSiguiente(ctx, f.EmisorNIT)
	if s == "" {
		return &dto.SugerenciaSerieResponse{}, nil
	}
	return &dto.SugerenciaSerieResponse{NumeroSerie: &s}, nil
}

// Clasificar persiste la clasificación y sincroniza el valor real derivado.
//
// Para mercancía el número de serie es obligatorio y se revalida su unicidad
// en el momento de escribir: la sugerencia es una heurística y otro usuario
// puede haberla tomado mientras el diálogo estaba abierto.
func (uc *ClasificarUseCase) Clasificar(ctx context.Context, facturaID string, in dto.ClasificarRequest) (*dto.FacturaResponse, error) {
	if !entity.ClasificacionValida(in.Clasificacion) {
		return nil, domain.ErrInvalidInput
	}

	f, err := uc.facturaRepo.GetByID(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}

	var numeroSerie *string
	if in.Clasificacion == entity.ClasificacionMercancia {
		s := strings.TrimSpace(in.NumeroSerie)
		if s == "" {
			return nil, domain.ErrInvalidInput
		}
		existe, err := uc.serieRepo.ExisteSerie(ctx, s)
		if err != nil {
			return nil, err
		}
		if existe && (f.NumeroSerie == nil || *f.NumeroSerie != s) {
			return nil, domain.ErrSerieDuplicada
		}
		numeroSerie = &s
	}

	f.Clasificacion = in.Clasificacion
	f.NumeroSerie = numeroSerie
	// RealEfectivo y no RealAPagar: una fila con créditos en notas debe
	// conservarlos en el valor persistido (misma derivación que el backfill)
	real := valor.RealEfectivo(f)
	if err := uc.facturaRepo.UpdateClasificacion(ctx, facturaID, in.Clasificacion, numeroSerie, real); err != nil {
		return nil, err
	}
	f.ValorRealAPagar = &real

	resp := ArmarFacturaResponse(f)
	return &resp, nil
}
