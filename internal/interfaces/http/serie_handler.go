package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/application/facturas"
	"github.com/tu-usuario/facturas-pro/pkg/nit"
)

// SerieHandler expone el sugeridor de números de serie (protegido).
type SerieHandler struct {
	suggester facturas.SerieSuggester
}

// NewSerieHandler construye el handler.
func NewSerieHandler(suggester facturas.SerieSuggester) *SerieHandler {
	return &SerieHandler{suggester: suggester}
}

// Sugerencia propone el siguiente número de serie. Con ?nit= prioriza el
// historial del proveedor; sin él aplica solo las estrategias globales.
// GET /api/series/sugerencia
func (h *SerieHandler) Sugerencia(c *fiber.Ctx) error {
	emisorNIT := nit.Normalizar(c.Query("nit"))
	s := h.suggester.SugerirSiguiente(c.Context(), emisorNIT)
	if s == "" {
		// null = sin sugerencia, el usuario digita manualmente
		return c.JSON(dto.SugerenciaSerieResponse{})
	}
	return c.JSON(dto.SugerenciaSerieResponse{NumeroSerie: &s})
}
