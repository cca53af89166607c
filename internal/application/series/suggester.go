// Package series implementa el sugeridor de números de serie: infiere la
// convención de numeración del proveedor a partir de su historial y propone
// el siguiente número libre.
package series

import (
	"context"
	"strconv"
	"strings"

	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
	"github.com/tu-usuario/facturas-pro/internal/domain/serie"
	"github.com/tu-usuario/facturas-pro/pkg/logger"
)

// SerieInicial es el respaldo final cuando no existe ningún historial.
const SerieInicial = "001"

// Config límites del sugeridor. Son configurables para que los tests puedan
// forzar el agotamiento de reintentos con valores pequeños.
type Config struct {
	HistorialProveedor int // series recientes consultadas por proveedor
	HistorialGlobal    int // series recientes consultadas globalmente
	IntentosProveedor  int // reintentos ante colisión con el patrón del proveedor
	IntentosGlobal     int // reintentos ante colisión con patrones globales
}

// DefaultConfig valores de producción.
func DefaultConfig() Config {
	return Config{
		HistorialProveedor: 5,
		HistorialGlobal:    100,
		IntentosProveedor:  10,
		IntentosGlobal:     20,
	}
}

// Suggester propone números de serie. Solo lee del repositorio: la unicidad
// final la garantiza quien persiste la clasificación.
type Suggester struct {
	repo repository.SerieRepository
	cfg  Config
	log  *logger.Logger
}

// NewSuggester construye el sugeridor. Campos en cero de cfg toman el valor
// por defecto.
func NewSuggester(repo repository.SerieRepository, cfg Config, log *logger.Logger) *Suggester {
	def := DefaultConfig()
	if cfg.HistorialProveedor <= 0 {
		cfg.HistorialProveedor = def.HistorialProveedor
	}
	if cfg.HistorialGlobal <= 0 {
		cfg.HistorialGlobal = def.HistorialGlobal
	}
	if cfg.IntentosProveedor <= 0 {
		cfg.IntentosProveedor = def.IntentosProveedor
	}
	if cfg.IntentosGlobal <= 0 {
		cfg.IntentosGlobal = def.IntentosGlobal
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Suggester{repo: repo, cfg: cfg, log: log.Modulo("series")}
}

// SugerirSiguiente propone el siguiente número de serie para el proveedor.
//
// Orden de estrategias:
//  1. Patrón más común del historial del proveedor, con reintentos ante colisión.
//  2. Sin historial (o agotados los reintentos): historial global. Si no hay
//     ninguna serie en el sistema, SerieInicial.
//  3. Patrón con el mayor número global. Una serie puramente numérica devuelve
//     el incremento directo sin relleno adicional ("59" → "60", nunca "060").
//  4. Patrón más frecuente global.
//  5. SerieInicial.
//
// Devuelve "" cuando una falla del almacén impide sugerir (consulta global o
// verificación de existencia); el usuario digita el número manualmente. El
// respaldo SerieInicial queda reservado para el agotamiento real de las
// estrategias, nunca para un almacén caído. Nunca retorna error: la
// sugerencia es una heurística, no una garantía de unicidad.
func (s *Suggester) SugerirSiguiente(ctx context.Context, emisorNIT string) string {
	if emisorNIT != "" {
		series, err := s.repo.ListarSeries(ctx, repository.FiltroSeries{EmisorNIT: emisorNIT}, s.cfg.HistorialProveedor)
		if err != nil {
			s.log.Warn().Err(err).Str("nit", emisorNIT).Msg("fallo consultando historial del proveedor")
		} else if patrones := analizarSeries(series); len(patrones) > 0 {
			if p, ok := serie.DetectarPatronComun(patrones); ok {
				c, err := s.generarConReintentos(ctx, p, s.cfg.IntentosProveedor)
				if err != nil {
					return ""
				}
				if c != "" {
					return c
				}
			}
		}
	}

	global, err := s.repo.ListarSeries(ctx, repository.FiltroSeries{}, s.cfg.HistorialGlobal)
	if err != nil {
		s.log.Warn().Err(err).Msg("fallo consultando historial global")
		return ""
	}
	patrones := analizarSeries(global)
	if len(patrones) == 0 {
		return SerieInicial
	}

	// Primero el mayor número global; un patrón puramente numérico se
	// incrementa directo, sin verificación de colisión.
	if p, ok := serie.MayorNumero(patrones); ok {
		if p.EsPuramenteNumerico() {
			return strconv.Itoa(p.Numero + 1)
		}
		c, err := s.generarConReintentos(ctx, p, s.cfg.IntentosGlobal)
		if err != nil {
			return ""
		}
		if c != "" {
			return c
		}
	}

	if p, ok := serie.DetectarPatronComun(patrones); ok {
		c, err := s.generarConReintentos(ctx, p, s.cfg.IntentosGlobal)
		if err != nil {
			return ""
		}
		if c != "" {
			return c
		}
	}

	return SerieInicial
}

// generarConReintentos genera candidatos a partir del patrón, verificando la
// existencia de cada uno e incrementando hasta agotar los intentos. ("", nil)
// indica estrategia agotada y el caller pasa a la siguiente; un error de
// almacén corta la sugerencia completa.
func (s *Suggester) generarConReintentos(ctx context.Context, p serie.Patron, intentos int) (string, error) {
	n := p.Numero + 1
	for i := 0; i < intentos; i++ {
		candidato := p.Generar(n)
		existe, err := s.repo.ExisteSerie(ctx, candidato)
		if err != nil {
			s.log.Warn().Err(err).Str("candidato", candidato).Msg("fallo verificando existencia de la serie")
			return "", err
		}
		if !existe {
			return candidato, nil
		}
		n++
	}
	return "", nil
}

func analizarSeries(series []string) []serie.Patron {
	out := make([]serie.Patron, 0, len(series))
	for _, s := range series {
		if strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, serie.Analizar(s))
	}
	return out
}
