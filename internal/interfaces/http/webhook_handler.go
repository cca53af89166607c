package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/application/facturas"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/pkg/logger"
)

// HeaderFirmaWebhook header con la firma HMAC-SHA256 (hex) del cuerpo crudo.
const HeaderFirmaWebhook = "X-Webhook-Signature"

// WebhookHandler recibe las facturas que empuja el sistema de recepción.
// Es la única ruta pública de escritura: se protege con firma HMAC en vez
// de JWT porque el emisor es una máquina, no un usuario del panel.
type WebhookHandler struct {
	ingreso *facturas.IngresoUseCase
	secret  string
	log     *logger.Logger
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(ingreso *facturas.IngresoUseCase, secret string, log *logger.Logger) *WebhookHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WebhookHandler{ingreso: ingreso, secret: secret, log: log.Modulo("webhook")}
}

// Recibir valida la firma del cuerpo crudo y crea la factura entrante.
// POST /api/webhooks/facturas
func (h *WebhookHandler) Recibir(c *fiber.Ctx) error {
	body := c.Body()
	if !h.firmaValida(c.Get(HeaderFirmaWebhook), body) {
		h.log.Warn().Str("ip", c.IP()).Msg("webhook con firma inválida")
		return respondError(c, domain.ErrFirmaWebhookInvalida)
	}

	var in dto.WebhookFacturaRequest
	if err := json.Unmarshal(body, &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	resp, err := h.ingreso.Crear(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	h.log.Info().Str("factura_id", resp.ID).Str("numero", resp.NumeroFactura).Msg("factura recibida por webhook")
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// firmaValida compara en tiempo constante la firma recibida con la esperada.
func (h *WebhookHandler) firmaValida(firma string, body []byte) bool {
	if h.secret == "" || firma == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	esperada := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(esperada), []byte(firma))
}
