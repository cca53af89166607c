// Comando de una sola pasada que puebla valor_real_a_pagar en las facturas
// donde sigue en NULL. Idempotente: relanzarlo no toca filas ya pobladas.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tu-usuario/facturas-pro/internal/application/backfill"
	"github.com/tu-usuario/facturas-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/facturas-pro/pkg/config"
	"github.com/tu-usuario/facturas-pro/pkg/logger"
)

func main() {
	tamanoLote := flag.Int("lote", backfill.TamanoLoteDefault, "filas procesadas por lote")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := backfill.New(postgres.NewFacturaRepository(pool), *tamanoLote, log)

	res, err := uc.Ejecutar(ctx)
	if err != nil {
		// Los lotes ya confirmados se quedan; el reporte dice hasta dónde llegó
		log.Error().Err(err).
			Int("lotes_completos", res.LotesCompletos).
			Int("filas_escritas", res.FilasEscritas).
			Msg("backfill interrumpido")
		os.Exit(1)
	}

	log.Info().
		Int("lotes_completos", res.LotesCompletos).
		Int("filas_escritas", res.FilasEscritas).
		Msg("backfill terminado")
}
