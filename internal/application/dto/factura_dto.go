package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FacturaResponse expone los campos almacenados de la factura más los valores
// derivados, calculados al vuelo por el motor de cálculo al armar la respuesta.
type FacturaResponse struct {
	ID                   string           `json:"id"`
	NumeroFactura        string           `json:"numero_factura"`
	EmisorNombre         string           `json:"emisor_nombre"`
	EmisorNIT            string           `json:"emisor_nit"`
	FechaEmision         time.Time        `json:"fecha_emision"`
	FechaVencimiento     *time.Time       `json:"fecha_vencimiento,omitempty"`
	TotalAPagar          decimal.Decimal  `json:"total_a_pagar"`
	TotalSinIVA          *decimal.Decimal `json:"total_sin_iva,omitempty"`
	FacturaIVA           *decimal.Decimal `json:"factura_iva,omitempty"`
	TieneRetencion       *bool            `json:"tiene_retencion,omitempty"`
	MontoRetencion       *decimal.Decimal `json:"monto_retencion,omitempty"`
	PorcentajeProntoPago *decimal.Decimal `json:"porcentaje_pronto_pago,omitempty"`
	Clasificacion        string           `json:"clasificacion,omitempty"`
	EstadoPago           string           `json:"estado_pago"`
	NumeroSerie          *string          `json:"numero_serie,omitempty"`

	// Derivados del motor de cálculo
	ValorRetencion  decimal.Decimal `json:"valor_retencion"`
	ValorRealAPagar decimal.Decimal `json:"valor_real_a_pagar"`
	TotalEfectivo   decimal.Decimal `json:"total_efectivo"`
}

// ListadoFacturasResponse página de facturas.
type ListadoFacturasResponse struct {
	Items []FacturaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// FiltroFacturasRequest query params del listado.
type FiltroFacturasRequest struct {
	PageRequest
	Clasificacion string `query:"clasificacion"`
	SinClasificar bool   `query:"sin_clasificar"`
	EstadoPago    string `query:"estado_pago"`
	EmisorNIT     string `query:"emisor_nit"`
	Busqueda      string `query:"q"`
}

// ClasificarRequest clasifica una factura; numero_serie solo aplica a mercancía
// (la sugerencia aceptada o el valor digitado por el usuario).
type ClasificarRequest struct {
	Clasificacion string `json:"clasificacion"`
	NumeroSerie   string `json:"numero_serie,omitempty"`
}

// PagoRequest cambia el estado de pago.
type PagoRequest struct {
	EstadoPago string `json:"estado_pago"`
}

// NotaCreditoRequest liga una nota de crédito existente a la factura original.
type NotaCreditoRequest struct {
	NotaCreditoID  string          `json:"nota_credito_id"`
	ValorDescuento decimal.Decimal `json:"valor_descuento"`
}

// SugerenciaSerieResponse propuesta del sugeridor; numero_serie null significa
// "sin sugerencia, digitar manualmente".
type SugerenciaSerieResponse struct {
	NumeroSerie *string `json:"numero_serie"`
}

// WebhookFacturaRequest cuerpo del webhook de facturas entrantes.
type WebhookFacturaRequest struct {
	NumeroFactura    string           `json:"numero_factura"`
	EmisorNombre     string           `json:"emisor_nombre"`
	EmisorNIT        string           `json:"emisor_nit"`
	FechaEmision     string           `json:"fecha_emision"` // YYYY-MM-DD
	FechaVencimiento string           `json:"fecha_vencimiento,omitempty"`
	TotalAPagar      decimal.Decimal  `json:"total_a_pagar"`
	TotalSinIVA      *decimal.Decimal `json:"total_sin_iva,omitempty"`
	FacturaIVA       *decimal.Decimal `json:"factura_iva,omitempty"`
	PDFPath          string           `json:"pdf_path,omitempty"`
}

// PDFURLResponse signed URL temporal del adjunto.
type PDFURLResponse struct {
	URL          string `json:"url"`
	ExpiraEnSecs int    `json:"expira_en_secs"`
}
