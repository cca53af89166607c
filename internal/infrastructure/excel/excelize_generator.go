// Package excel exporta el reporte de facturas a un libro XLSX con Excelize.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/facturas-pro/internal/application/reportes"
)

var _ reportes.ExcelGenerator = (*ExcelizeGenerator)(nil)

const hoja = "Facturas"

// ExcelizeGenerator implementa reportes.ExcelGenerator.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator construye el exportador.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

// GenerarLibroFacturas arma el libro con una hoja: cabecera en negrilla y una
// fila por factura, montos como números para que Excel pueda sumarlos.
func (g *ExcelizeGenerator) GenerarLibroFacturas(_ context.Context, filas []reportes.FilaReporte) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(hoja)
	if err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: borrar hoja por defecto: %w", err)
	}

	cabeceras := []string{
		"Número de factura", "Proveedor", "NIT", "Fecha de emisión",
		"Clasificación", "Estado de pago", "Total a pagar", "Retención", "Valor real a pagar",
	}
	for i, h := range cabeceras {
		celda, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("excel: celda de cabecera: %w", err)
		}
		if err := f.SetCellValue(hoja, celda, h); err != nil {
			return nil, fmt.Errorf("excel: escribir cabecera: %w", err)
		}
	}
	if estilo, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(hoja, 1, 1, estilo)
	}

	for i, fila := range filas {
		valores := []any{
			fila.NumeroFactura,
			fila.EmisorNombre,
			fila.EmisorNIT,
			fila.FechaEmision.Format("2006-01-02"),
			fila.Clasificacion,
			fila.EstadoPago,
			fila.TotalAPagar.InexactFloat64(),
			fila.ValorRetencion.InexactFloat64(),
			fila.ValorRealAPagar.InexactFloat64(),
		}
		for j, v := range valores {
			celda, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("excel: celda de datos: %w", err)
			}
			if err := f.SetCellValue(hoja, celda, v); err != nil {
				return nil, fmt.Errorf("excel: escribir fila %d: %w", i+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}
