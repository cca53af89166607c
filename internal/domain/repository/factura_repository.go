package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
)

// FiltroFacturas criterios de listado y búsqueda.
type FiltroFacturas struct {
	Clasificacion string // exacta; vacío = todas
	SinClasificar bool   // solo facturas sin clasificar (excluye Clasificacion)
	EstadoPago    string
	EmisorNIT     string
	Busqueda      string // texto libre sobre número de factura y nombre del emisor
	Limit         int
	Offset        int
}

// ResumenFacturas agregados para las tarjetas del dashboard.
type ResumenFacturas struct {
	Total              int
	SinClasificar      int
	Mercancia          int
	Gasto              int
	Sistematizada      int
	NotasCredito       int
	PendientesPago     int
	Vencidas           int
	MontoPendiente     decimal.Decimal // Σ total_a_pagar de facturas pendientes
	MontoRealPendiente decimal.Decimal // Σ valor_real_a_pagar de facturas pendientes
}

// ValorRealCalculado par factura/valor para la escritura por lotes del backfill.
type ValorRealCalculado struct {
	FacturaID string
	Valor     decimal.Decimal
}

// FacturaRepository define el puerto de persistencia de facturas.
type FacturaRepository interface {
	Create(ctx context.Context, f *entity.Factura) error
	GetByID(ctx context.Context, id string) (*entity.Factura, error)
	// List devuelve la página solicitada y el total de filas que cumplen el filtro.
	List(ctx context.Context, filtro FiltroFacturas) ([]*entity.Factura, int, error)
	// UpdateClasificacion persiste la clasificación, el número de serie (puede
	// ser nil) y el valor real recalculado en una sola escritura parcial.
	UpdateClasificacion(ctx context.Context, id, clasificacion string, numeroSerie *string, valorReal decimal.Decimal) error
	UpdateEstadoPago(ctx context.Context, id, estado string) error
	// UpdateNotas reemplaza el campo notas y sincroniza el valor real derivado.
	UpdateNotas(ctx context.Context, id, notas string, valorReal decimal.Decimal) error
	// ListSinValorReal pagina las facturas cuyo valor_real_a_pagar sigue en NULL (backfill).
	ListSinValorReal(ctx context.Context, limit int) ([]*entity.Factura, error)
	// UpdateValoresReales escribe un lote de valores derivados en una transacción.
	UpdateValoresReales(ctx context.Context, valores []ValorRealCalculado) error
	Resumen(ctx context.Context) (*ResumenFacturas, error)
}
