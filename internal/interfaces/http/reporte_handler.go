package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-pro/internal/application/reportes"
)

// ReporteHandler descarga de reportes de facturas pendientes (protegido).
type ReporteHandler struct {
	uc *reportes.UseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reportes.UseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// PendientesPDF reporte imprimible de facturas pendientes de pago.
// GET /api/reportes/facturas.pdf
func (h *ReporteHandler) PendientesPDF(c *fiber.Ctx) error {
	doc, err := h.uc.PendientesPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="facturas-pendientes-`+time.Now().Format("2006-01-02")+`.pdf"`)
	return c.Send(doc)
}

// PendientesExcel libro XLSX de facturas pendientes de pago.
// GET /api/reportes/facturas.xlsx
func (h *ReporteHandler) PendientesExcel(c *fiber.Ctx) error {
	libro, err := h.uc.PendientesExcel(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="facturas-pendientes-`+time.Now().Format("2006-01-02")+`.xlsx"`)
	return c.Send(libro)
}
