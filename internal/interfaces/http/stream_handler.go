package http

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/tu-usuario/facturas-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/facturas-pro/pkg/logger"
)

// StreamHandler empuja los cambios de facturas al panel vía Server-Sent Events.
// El frontend recarga el listado ante cualquier evento; el payload solo trae
// {id, evento} para no duplicar la lógica de proyección en dos lados.
type StreamHandler struct {
	listener *postgres.Listener
	log      *logger.Logger
}

// NewStreamHandler construye el handler.
func NewStreamHandler(listener *postgres.Listener, log *logger.Logger) *StreamHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &StreamHandler{listener: listener, log: log.Modulo("stream")}
}

// Facturas mantiene la conexión SSE abierta enviando cada notificación como
// un evento "factura". Un comentario keep-alive cada 25s evita que los proxies
// corten la conexión ociosa.
// GET /api/facturas/stream
func (h *StreamHandler) Facturas(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	eventos, cancelar := h.listener.Suscribir()

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancelar()
		keepAlive := time.NewTicker(25 * time.Second)
		defer keepAlive.Stop()

		for {
			select {
			case payload, ok := <-eventos:
				if !ok {
					return
				}
				if _, err := fmt.Fprintf(w, "event: factura\ndata: %s\n\n", payload); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepAlive.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
