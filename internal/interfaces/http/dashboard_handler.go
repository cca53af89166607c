package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-pro/internal/application/analytics"
)

// DashboardHandler agregados para las tarjetas del panel (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen contadores por clasificación y montos pendientes.
// GET /api/dashboard/resumen
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	resp, err := h.uc.Resumen(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
