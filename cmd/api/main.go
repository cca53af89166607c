package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/facturas-pro/internal/application/analytics"
	"github.com/tu-usuario/facturas-pro/internal/application/facturas"
	"github.com/tu-usuario/facturas-pro/internal/application/reportes"
	"github.com/tu-usuario/facturas-pro/internal/application/series"
	infraexcel "github.com/tu-usuario/facturas-pro/internal/infrastructure/excel"
	infrapdf "github.com/tu-usuario/facturas-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/facturas-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/facturas-pro/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/facturas-pro/internal/interfaces/http"
	"github.com/tu-usuario/facturas-pro/pkg/config"
	"github.com/tu-usuario/facturas-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	facturaRepo := postgres.NewFacturaRepository(pool)
	serieRepo := postgres.NewSerieRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	suggester := series.NewSuggester(serieRepo, series.Config{
		HistorialProveedor: cfg.Series.HistorialProveedor,
		HistorialGlobal:    cfg.Series.HistorialGlobal,
		IntentosProveedor:  cfg.Series.IntentosProveedor,
		IntentosGlobal:     cfg.Series.IntentosGlobal,
	}, log)

	storageClient := storage.NewSupabaseClient(cfg.Storage)

	consultaUC := facturas.NewConsultaUseCase(facturaRepo)
	clasificarUC := facturas.NewClasificarUseCase(facturaRepo, serieRepo, suggester)
	pagoUC := facturas.NewPagoUseCase(facturaRepo)
	notaCreditoUC := facturas.NewNotaCreditoUseCase(txRunner)
	adjuntoUC := facturas.NewAdjuntoUseCase(facturaRepo, storageClient, cfg.Storage.URLExpirySecs)
	ingresoUC := facturas.NewIngresoUseCase(facturaRepo)
	dashboardUC := analytics.NewDashboardUseCase(facturaRepo)
	reportesUC := reportes.New(facturaRepo, infrapdf.NewMarotoReportGenerator(), infraexcel.NewExcelizeGenerator())

	// LISTEN/NOTIFY -> SSE: alimenta el refresco en vivo del panel
	listener := postgres.NewListener(pool, log)
	go func() {
		if err := listener.Escuchar(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("listener de cambios finalizado")
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturas Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Consulta:      consultaUC,
		Clasificar:    clasificarUC,
		Pago:          pagoUC,
		NotaCredito:   notaCreditoUC,
		Adjunto:       adjuntoUC,
		Ingreso:       ingresoUC,
		Suggester:     suggester,
		Dashboard:     dashboardUC,
		Reportes:      reportesUC,
		Perfiles:      profileRepo,
		Listener:      listener,
		JWTSecret:     cfg.JWT.Secret,
		WebhookSecret: cfg.Webhook.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
