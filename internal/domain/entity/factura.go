package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Clasificaciones de una factura recibida.
const (
	ClasificacionMercancia     = "mercancia"     // compra de mercancía para inventario
	ClasificacionGasto         = "gasto"         // gasto operativo
	ClasificacionSistematizada = "sistematizada" // ya registrada en el sistema contable
	ClasificacionNotaCredito   = "nota_credito"  // documento de ajuste sobre otra factura
)

// Estados de pago.
const (
	EstadoPagoPendiente = "pendiente"
	EstadoPagoPagada    = "pagada"
	EstadoPagoVencida   = "vencida"
)

// Factura representa una factura de proveedor recibida.
//
// Los campos numéricos opcionales son punteros: NULL en la base significa
// "no aplica" y el motor de cálculo los trata como cero.
// MontoRetencion y PorcentajeProntoPago son porcentajes 0–100, no montos
// (el nombre de la columna es histórico).
type Factura struct {
	ID                   string
	NumeroFactura        string
	EmisorNombre         string
	EmisorNIT            string
	FechaEmision         time.Time
	FechaVencimiento     *time.Time
	TotalAPagar          decimal.Decimal
	TotalSinIVA          *decimal.Decimal
	FacturaIVA           *decimal.Decimal
	TieneRetencion       *bool
	MontoRetencion       *decimal.Decimal // porcentaje 0–100
	PorcentajeProntoPago *decimal.Decimal // porcentaje 0–100
	Clasificacion        string           // vacío = sin clasificar
	EstadoPago           string
	Notas                *string // JSON libre: vínculo/lista de notas de crédito
	NumeroSerie          *string
	ValorRealAPagar      *decimal.Decimal // derivado, persistido por el backfill y los writers
	PDFPath              *string          // ruta del adjunto en el bucket de storage
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EsNotaCredito indica si la factura está clasificada como nota de crédito.
func (f *Factura) EsNotaCredito() bool {
	return f.Clasificacion == ClasificacionNotaCredito
}

// ClasificacionValida valida el valor de una clasificación entrante.
func ClasificacionValida(c string) bool {
	switch c {
	case ClasificacionMercancia, ClasificacionGasto, ClasificacionSistematizada, ClasificacionNotaCredito:
		return true
	}
	return false
}

// EstadoPagoValido valida el valor de un estado de pago entrante.
func EstadoPagoValido(e string) bool {
	switch e {
	case EstadoPagoPendiente, EstadoPagoPagada, EstadoPagoVencida:
		return true
	}
	return false
}
