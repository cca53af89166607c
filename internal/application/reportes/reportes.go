// Package reportes arma los reportes exportables del panel (PDF y Excel).
package reportes

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
	"github.com/tu-usuario/facturas-pro/internal/domain/valor"
)

// topeFilasReporte límite defensivo del tamaño del reporte.
const topeFilasReporte = 1000

// FilaReporte es una fila del reporte de facturas con los derivados ya calculados.
type FilaReporte struct {
	NumeroFactura   string
	EmisorNombre    string
	EmisorNIT       string
	FechaEmision    time.Time
	Clasificacion   string
	EstadoPago      string
	TotalAPagar     decimal.Decimal
	ValorRetencion  decimal.Decimal
	ValorRealAPagar decimal.Decimal
}

// PDFGenerator puerto del generador PDF (Maroto en infraestructura).
type PDFGenerator interface {
	GenerarReporteFacturas(ctx context.Context, titulo string, filas []FilaReporte) ([]byte, error)
}

// ExcelGenerator puerto del exportador XLSX (Excelize en infraestructura).
type ExcelGenerator interface {
	GenerarLibroFacturas(ctx context.Context, filas []FilaReporte) ([]byte, error)
}

// UseCase genera los reportes de facturas pendientes de pago.
type UseCase struct {
	facturaRepo repository.FacturaRepository
	pdf         PDFGenerator
	excel       ExcelGenerator
}

// New construye el caso de uso.
func New(facturaRepo repository.FacturaRepository, pdf PDFGenerator, excel ExcelGenerator) *UseCase {
	return &UseCase{facturaRepo: facturaRepo, pdf: pdf, excel: excel}
}

// PendientesPDF reporte PDF de facturas pendientes de pago.
func (uc *UseCase) PendientesPDF(ctx context.Context) ([]byte, error) {
	filas, err := uc.filasPendientes(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerarReporteFacturas(ctx, "Facturas pendientes de pago", filas)
}

// PendientesExcel libro XLSX de facturas pendientes de pago.
func (uc *UseCase) PendientesExcel(ctx context.Context) ([]byte, error) {
	filas, err := uc.filasPendientes(ctx)
	if err != nil {
		return nil, err
	}
	return uc.excel.GenerarLibroFacturas(ctx, filas)
}

func (uc *UseCase) filasPendientes(ctx context.Context) ([]FilaReporte, error) {
	facturas, _, err := uc.facturaRepo.List(ctx, repository.FiltroFacturas{
		EstadoPago: entity.EstadoPagoPendiente,
		Limit:      topeFilasReporte,
	})
	if err != nil {
		return nil, err
	}
	filas := make([]FilaReporte, 0, len(facturas))
	for _, f := range facturas {
		filas = append(filas, FilaReporte{
			NumeroFactura:   f.NumeroFactura,
			EmisorNombre:    f.EmisorNombre,
			EmisorNIT:       f.EmisorNIT,
			FechaEmision:    f.FechaEmision,
			Clasificacion:   f.Clasificacion,
			EstadoPago:      f.EstadoPago,
			TotalAPagar:     f.TotalAPagar,
			ValorRetencion:  valor.Retencion(f),
			ValorRealAPagar: valor.RealEfectivo(f),
		})
	}
	return filas, nil
}
