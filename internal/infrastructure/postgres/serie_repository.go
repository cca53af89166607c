package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
)

var _ repository.SerieRepository = (*SerieRepo)(nil)

// SerieRepo consultas sobre los números de serie ya asignados a mercancía.
type SerieRepo struct {
	q Querier
}

// NewSerieRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSerieRepository(q Querier) *SerieRepo {
	return &SerieRepo{q: q}
}

// ListarSeries devuelve las series más recientes (por fecha de asignación),
// opcionalmente filtradas por proveedor. El sugeridor infiere el patrón a
// partir de esta muestra.
func (r *SerieRepo) ListarSeries(ctx context.Context, filtro repository.FiltroSeries, limit int) ([]string, error) {
	query := `
		SELECT numero_serie
		FROM facturas
		WHERE numero_serie IS NOT NULL AND numero_serie <> ''`
	args := []any{limit}
	if filtro.EmisorNIT != "" {
		args = append(args, filtro.EmisorNIT)
		query += ` AND emisor_nit = $2`
	}
	query += ` ORDER BY updated_at DESC LIMIT $1`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar series: %w", err)
	}
	defer rows.Close()

	var series []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan serie: %w", err)
		}
		series = append(series, s)
	}
	return series, rows.Err()
}

// ExisteSerie indica si la serie ya está asignada a alguna factura.
func (r *SerieRepo) ExisteSerie(ctx context.Context, serie string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM facturas WHERE numero_serie = $1)`, serie).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe serie: %w", err)
	}
	return existe, nil
}
