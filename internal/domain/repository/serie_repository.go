package repository

import "context"

// FiltroSeries acota la consulta de series históricas. EmisorNIT vacío
// consulta todos los proveedores.
type FiltroSeries struct {
	EmisorNIT string
}

// SerieRepository es el puerto de solo lectura que consume el sugeridor de
// números de serie. Nunca escribe: la unicidad final la garantiza quien
// persiste la clasificación.
type SerieRepository interface {
	// ListarSeries devuelve hasta limit números de serie no vacíos, del más
	// reciente al más antiguo.
	ListarSeries(ctx context.Context, filtro FiltroSeries, limit int) ([]string, error)
	// ExisteSerie indica si el número de serie ya está asignado a alguna factura.
	ExisteSerie(ctx context.Context, serie string) (bool, error)
}
