package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-pro/internal/application/analytics"
	"github.com/tu-usuario/facturas-pro/internal/application/facturas"
	"github.com/tu-usuario/facturas-pro/internal/application/reportes"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
	"github.com/tu-usuario/facturas-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/facturas-pro/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Consulta    *facturas.ConsultaUseCase
	Clasificar  *facturas.ClasificarUseCase
	Pago        *facturas.PagoUseCase
	NotaCredito *facturas.NotaCreditoUseCase
	Adjunto     *facturas.AdjuntoUseCase
	Ingreso     *facturas.IngresoUseCase
	Suggester   facturas.SerieSuggester
	Dashboard   *analytics.DashboardUseCase
	Reportes    *reportes.UseCase
	Perfiles    repository.ProfileRepository
	Listener    *postgres.Listener

	JWTSecret     string
	WebhookSecret string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Webhook de facturas entrantes (público, firmado con HMAC)
	webhookHandler := NewWebhookHandler(deps.Ingreso, deps.WebhookSecret, deps.Log)
	api.Post("/webhooks/facturas", webhookHandler.Recibir)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	lectura := RequireRole(entity.RolAdmin, entity.RolContabilidad, entity.RolConsulta)
	escritura := RequireRole(entity.RolAdmin, entity.RolContabilidad)

	// Facturas (protegido)
	fs := protected.Group("/facturas")
	facturaHandler := NewFacturaHandler(deps.Consulta, deps.Clasificar, deps.Pago, deps.NotaCredito, deps.Adjunto)
	fs.Get("/", lectura, facturaHandler.List)

	// El stream SSE va antes de /:id para que "stream" no se tome como id
	streamHandler := NewStreamHandler(deps.Listener, deps.Log)
	fs.Get("/stream", lectura, streamHandler.Facturas)

	fs.Get("/:id", lectura, facturaHandler.GetByID)
	fs.Get("/:id/pdf-url", lectura, facturaHandler.PDFURL)
	fs.Get("/:id/sugerencia-serie", escritura, facturaHandler.SugerenciaSerie)
	fs.Patch("/:id/clasificacion", escritura, facturaHandler.Clasificar)
	fs.Patch("/:id/pago", escritura, facturaHandler.Pago)
	fs.Post("/:id/notas-credito", escritura, facturaHandler.NotaCredito)

	// Series (protegido)
	series := protected.Group("/series")
	serieHandler := NewSerieHandler(deps.Suggester)
	series.Get("/sugerencia", escritura, serieHandler.Sugerencia)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	dashboard.Get("/resumen", lectura, dashboardHandler.Resumen)

	// Reportes (protegido)
	rep := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.Reportes)
	rep.Get("/facturas.pdf", lectura, reporteHandler.PendientesPDF)
	rep.Get("/facturas.xlsx", lectura, reporteHandler.PendientesExcel)

	// Perfiles (protegido)
	perfiles := protected.Group("/perfiles")
	perfilHandler := NewPerfilHandler(deps.Perfiles)
	perfiles.Get("/me", lectura, perfilHandler.Me)
	perfiles.Get("/", RequireRole(entity.RolAdmin), perfilHandler.List)
}
