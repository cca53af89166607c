package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/application/facturas"
)

// FacturaHandler maneja las peticiones HTTP del módulo de facturas (protegido).
type FacturaHandler struct {
	consulta    *facturas.ConsultaUseCase
	clasificar  *facturas.ClasificarUseCase
	pago        *facturas.PagoUseCase
	notaCredito *facturas.NotaCreditoUseCase
	adjunto     *facturas.AdjuntoUseCase
}

// NewFacturaHandler construye el handler.
func NewFacturaHandler(
	consulta *facturas.ConsultaUseCase,
	clasificar *facturas.ClasificarUseCase,
	pago *facturas.PagoUseCase,
	notaCredito *facturas.NotaCreditoUseCase,
	adjunto *facturas.AdjuntoUseCase,
) *FacturaHandler {
	return &FacturaHandler{
		consulta:    consulta,
		clasificar:  clasificar,
		pago:        pago,
		notaCredito: notaCredito,
		adjunto:     adjunto,
	}
}

// List lista facturas con filtros y búsqueda-mientras-escribe.
// GET /api/facturas
func (h *FacturaHandler) List(c *fiber.Ctx) error {
	var in dto.FiltroFacturasRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	resp, err := h.consulta.Listar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID detalle de una factura con sus valores derivados.
// GET /api/facturas/:id
func (h *FacturaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	resp, err := h.consulta.Detalle(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Clasificar asigna la clasificación (y la serie, para mercancía).
// PATCH /api/facturas/:id/clasificacion
func (h *FacturaHandler) Clasificar(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.ClasificarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.clasificar.Clasificar(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SugerenciaSerie propone el siguiente número de serie para la factura.
// GET /api/facturas/:id/sugerencia-serie
func (h *FacturaHandler) SugerenciaSerie(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	resp, err := h.clasificar.Sugerencia(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Pago cambia el estado de pago.
// PATCH /api/facturas/:id/pago
func (h *FacturaHandler) Pago(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.PagoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.pago.ActualizarEstado(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// NotaCredito liga una nota de crédito existente a la factura.
// POST /api/facturas/:id/notas-credito
func (h *FacturaHandler) NotaCredito(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.NotaCreditoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.notaCredito.Aplicar(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// PDFURL entrega una signed URL temporal del PDF adjunto.
// GET /api/facturas/:id/pdf-url
func (h *FacturaHandler) PDFURL(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	resp, err := h.adjunto.URLDelPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
