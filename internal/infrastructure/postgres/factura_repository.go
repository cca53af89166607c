package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
)

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

// FacturaRepo implementación de FacturaRepository (usable con pool o tx).
type FacturaRepo struct {
	q Querier
}

// NewFacturaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacturaRepository(q Querier) *FacturaRepo {
	return &FacturaRepo{q: q}
}

const columnasFactura = `
	id, numero_factura, emisor_nombre, emisor_nit, fecha_emision, fecha_vencimiento,
	total_a_pagar, total_sin_iva, factura_iva, tiene_retencion, monto_retencion,
	porcentaje_pronto_pago, COALESCE(clasificacion, ''), estado_pago, notas,
	numero_serie, valor_real_a_pagar, pdf_path, created_at, updated_at`

// Create persiste una factura entrante.
func (r *FacturaRepo) Create(ctx context.Context, f *entity.Factura) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	query := `
		INSERT INTO facturas (id, numero_factura, emisor_nombre, emisor_nit, fecha_emision, fecha_vencimiento,
			total_a_pagar, total_sin_iva, factura_iva, tiene_retencion, monto_retencion,
			porcentaje_pronto_pago, clasificacion, estado_pago, notas, numero_serie,
			valor_real_a_pagar, pdf_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.NumeroFactura, f.EmisorNombre, f.EmisorNIT, f.FechaEmision, f.FechaVencimiento,
		f.TotalAPagar, f.TotalSinIVA, f.FacturaIVA, f.TieneRetencion, f.MontoRetencion,
		f.PorcentajeProntoPago, f.Clasificacion, f.EstadoPago, f.Notas, f.NumeroSerie,
		f.ValorRealAPagar, f.PDFPath, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factura ya registrada: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve (nil, nil) si no existe.
func (r *FacturaRepo) GetByID(ctx context.Context, id string) (*entity.Factura, error) {
	query := `SELECT` + columnasFactura + ` FROM facturas WHERE id = $1`
	f, err := scanFactura(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return f, nil
}

// List devuelve la página de facturas que cumple el filtro y el total de filas.
//
// La búsqueda llega ya normalizada (minúsculas, sin tildes) y se compara contra
// las columnas pasadas por unaccent, así "perez" encuentra "Pérez".
// Requiere la extensión unaccent (migración 001).
func (r *FacturaRepo) List(ctx context.Context, filtro repository.FiltroFacturas) ([]*entity.Factura, int, error) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filtro.SinClasificar {
		conds = append(conds, "clasificacion IS NULL")
	} else if filtro.Clasificacion != "" {
		conds = append(conds, "clasificacion = "+arg(filtro.Clasificacion))
	}
	if filtro.EstadoPago != "" {
		conds = append(conds, "estado_pago = "+arg(filtro.EstadoPago))
	}
	if filtro.EmisorNIT != "" {
		conds = append(conds, "emisor_nit = "+arg(filtro.EmisorNIT))
	}
	if filtro.Busqueda != "" {
		p := arg("%" + filtro.Busqueda + "%")
		conds = append(conds, fmt.Sprintf(
			"(unaccent(lower(numero_factura)) LIKE %s OR unaccent(lower(emisor_nombre)) LIKE %s)", p, p))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM facturas"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count facturas: %w", err)
	}

	query := `SELECT` + columnasFactura + ` FROM facturas` + where +
		` ORDER BY fecha_emision DESC, created_at DESC LIMIT ` + arg(filtro.Limit) + ` OFFSET ` + arg(filtro.Offset)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Factura
	for rows.Next() {
		f, err := scanFactura(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, f)
	}
	return list, total, rows.Err()
}

// UpdateClasificacion persiste clasificación, serie y valor real en una escritura.
func (r *FacturaRepo) UpdateClasificacion(ctx context.Context, id, clasificacion string, numeroSerie *string, valorReal decimal.Decimal) error {
	query := `
		UPDATE facturas
		SET clasificacion      = NULLIF($2, ''),
		    numero_serie       = $3,
		    valor_real_a_pagar = $4,
		    updated_at         = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, clasificacion, numeroSerie, valorReal, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSerieDuplicada
		}
		return fmt.Errorf("update clasificacion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateEstadoPago cambia el estado de pago.
func (r *FacturaRepo) UpdateEstadoPago(ctx context.Context, id, estado string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE facturas SET estado_pago = $2, updated_at = $3 WHERE id = $1`,
		id, estado, time.Now())
	if err != nil {
		return fmt.Errorf("update estado pago: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateNotas reemplaza el campo notas y sincroniza el valor real derivado.
func (r *FacturaRepo) UpdateNotas(ctx context.Context, id, notas string, valorReal decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE facturas SET notas = $2, valor_real_a_pagar = $3, updated_at = $4 WHERE id = $1`,
		id, notas, valorReal, time.Now())
	if err != nil {
		return fmt.Errorf("update notas: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListSinValorReal pagina las facturas con valor_real_a_pagar en NULL, de la
// más antigua a la más reciente, para la escritura por lotes del backfill.
func (r *FacturaRepo) ListSinValorReal(ctx context.Context, limit int) ([]*entity.Factura, error) {
	query := `SELECT` + columnasFactura + `
		FROM facturas
		WHERE valor_real_a_pagar IS NULL
		ORDER BY created_at
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sin valor real: %w", err)
	}
	defer rows.Close()

	var list []*entity.Factura
	for rows.Next() {
		f, err := scanFactura(rows)
		if err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// UpdateValoresReales escribe un lote de valores derivados. El lote entra
// completo o no entra: tanto el pool como una tx saben abrir una (sub)transacción.
func (r *FacturaRepo) UpdateValoresReales(ctx context.Context, valores []repository.ValorRealCalculado) error {
	b, ok := r.q.(interface {
		Begin(ctx context.Context) (pgx.Tx, error)
	})
	if !ok {
		return r.updateValoresReales(ctx, r.q, valores)
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin lote valores reales: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := r.updateValoresReales(ctx, tx, valores); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lote valores reales: %w", err)
	}
	return nil
}

func (r *FacturaRepo) updateValoresReales(ctx context.Context, q Querier, valores []repository.ValorRealCalculado) error {
	for _, v := range valores {
		_, err := q.Exec(ctx,
			`UPDATE facturas SET valor_real_a_pagar = $2, updated_at = $3 WHERE id = $1`,
			v.FacturaID, v.Valor, time.Now())
		if err != nil {
			return fmt.Errorf("update valor real %s: %w", v.FacturaID, err)
		}
	}
	return nil
}

// Resumen agrega los contadores y montos de las tarjetas del dashboard en una
// sola pasada sobre la tabla.
func (r *FacturaRepo) Resumen(ctx context.Context) (*repository.ResumenFacturas, error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE clasificacion IS NULL),
		       COUNT(*) FILTER (WHERE clasificacion = 'mercancia'),
		       COUNT(*) FILTER (WHERE clasificacion = 'gasto'),
		       COUNT(*) FILTER (WHERE clasificacion = 'sistematizada'),
		       COUNT(*) FILTER (WHERE clasificacion = 'nota_credito'),
		       COUNT(*) FILTER (WHERE estado_pago = 'pendiente'),
		       COUNT(*) FILTER (WHERE estado_pago = 'vencida'),
		       COALESCE(SUM(total_a_pagar) FILTER (WHERE estado_pago = 'pendiente'), 0),
		       COALESCE(SUM(COALESCE(valor_real_a_pagar, total_a_pagar)) FILTER (WHERE estado_pago = 'pendiente'), 0)
		FROM facturas`
	var res repository.ResumenFacturas
	err := r.q.QueryRow(ctx, query).Scan(
		&res.Total, &res.SinClasificar, &res.Mercancia, &res.Gasto,
		&res.Sistematizada, &res.NotasCredito, &res.PendientesPago, &res.Vencidas,
		&res.MontoPendiente, &res.MontoRealPendiente,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen facturas: %w", err)
	}
	return &res, nil
}

func scanFactura(row pgx.Row) (*entity.Factura, error) {
	var f entity.Factura
	err := row.Scan(
		&f.ID, &f.NumeroFactura, &f.EmisorNombre, &f.EmisorNIT, &f.FechaEmision, &f.FechaVencimiento,
		&f.TotalAPagar, &f.TotalSinIVA, &f.FacturaIVA, &f.TieneRetencion, &f.MontoRetencion,
		&f.PorcentajeProntoPago, &f.Clasificacion, &f.EstadoPago, &f.Notas,
		&f.NumeroSerie, &f.ValorRealAPagar, &f.PDFPath, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
