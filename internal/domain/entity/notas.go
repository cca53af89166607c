package entity

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// TipoNotas etiqueta la variante de metadatos embebida en el campo notas
// (JSON guardado en una columna de texto).
type TipoNotas int

const (
	// NotasNinguna: sin metadatos estructurados (campo vacío, texto libre o JSON inválido).
	NotasNinguna TipoNotas = iota
	// NotasVinculoNotaCredito: esta factura ES una nota de crédito ligada a su factura original.
	NotasVinculoNotaCredito
	// NotasCreditosAplicados: lista de notas de crédito aplicadas a esta factura.
	NotasCreditosAplicados
	// NotasTotalConDescuentos: total ya ajustado, precalculado por un writer anterior.
	NotasTotalConDescuentos
)

// NotaCreditoAplicada es una entrada del arreglo notas_credito.
type NotaCreditoAplicada struct {
	FacturaID      string          `json:"factura_id,omitempty"`
	NumeroFactura  string          `json:"numero_factura,omitempty"`
	ValorDescuento decimal.Decimal `json:"valor_descuento"`
}

// Notas es la unión etiquetada resultado de decodificar el campo notas una
// sola vez en la frontera. Los consumidores miran Tipo y el campo que aplica.
type Notas struct {
	Tipo               TipoNotas
	FacturaOriginalID  string
	Creditos           []NotaCreditoAplicada
	TotalConDescuentos decimal.Decimal
}

// notasJSON refleja los campos crudos que puede traer el JSON.
type notasJSON struct {
	Tipo               string                `json:"tipo"`
	FacturaOriginalID  string                `json:"factura_original_id"`
	NumeroOriginal     string                `json:"numero_factura_original"`
	NotasCredito       []NotaCreditoAplicada `json:"notas_credito"`
	TotalConDescuentos *decimal.Decimal      `json:"total_con_descuentos"`
}

// ParseNotas decodifica el campo notas. Entrada nula, vacía o mal formada
// produce NotasNinguna; nunca retorna error ni hace pánico.
//
// Precedencia cuando el JSON trae varios campos: vínculo de nota de crédito,
// luego créditos aplicados, luego total precalculado.
func ParseNotas(raw *string) Notas {
	if raw == nil {
		return Notas{}
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return Notas{}
	}
	var nj notasJSON
	if err := json.Unmarshal([]byte(s), &nj); err != nil {
		// texto libre u JSON corrupto: se trata como ausente
		return Notas{}
	}
	switch {
	case nj.Tipo == ClasificacionNotaCredito && nj.FacturaOriginalID != "":
		return Notas{Tipo: NotasVinculoNotaCredito, FacturaOriginalID: nj.FacturaOriginalID}
	case len(nj.NotasCredito) > 0:
		return Notas{Tipo: NotasCreditosAplicados, Creditos: nj.NotasCredito}
	case nj.TotalConDescuentos != nil:
		return Notas{Tipo: NotasTotalConDescuentos, TotalConDescuentos: *nj.TotalConDescuentos}
	}
	return Notas{}
}

// NotasVinculoJSON serializa el campo notas de una nota de crédito recién
// ligada a su factura original.
func NotasVinculoJSON(facturaOriginalID, numeroOriginal string) string {
	b, _ := json.Marshal(notasJSON{
		Tipo:              ClasificacionNotaCredito,
		FacturaOriginalID: facturaOriginalID,
		NumeroOriginal:    numeroOriginal,
	})
	return string(b)
}

// AgregarCreditoAplicado devuelve el campo notas de la factura original con el
// crédito añadido a la lista notas_credito, conservando los créditos previos.
func AgregarCreditoAplicado(raw *string, credito NotaCreditoAplicada) string {
	previas := ParseNotas(raw)
	lista := append(previas.Creditos, credito)
	b, _ := json.Marshal(struct {
		NotasCredito []NotaCreditoAplicada `json:"notas_credito"`
	}{NotasCredito: lista})
	return string(b)
}
