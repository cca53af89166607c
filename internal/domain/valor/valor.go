// Package valor implementa el motor de cálculo de valores reales a pagar:
// retención en la fuente, descuento por pronto pago y total efectivo tras
// notas de crédito.
//
// Todas las funciones son puras: sin I/O, sin error y sin pánico. Campos
// numéricos ausentes (NULL) se tratan como cero y un campo notas mal formado
// se trata como ausente.
package valor

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// BaseGravable es la base pretributaria de retención y pronto pago:
// total_sin_iva si está almacenado, si no total_a_pagar - factura_iva.
func BaseGravable(f *entity.Factura) decimal.Decimal {
	if f.TotalSinIVA != nil {
		return *f.TotalSinIVA
	}
	iva := decimal.Zero
	if f.FacturaIVA != nil {
		iva = *f.FacturaIVA
	}
	return f.TotalAPagar.Sub(iva)
}

// Retencion es el monto de retención en la fuente. Cero cuando el porcentaje
// (monto_retencion, que pese al nombre es un porcentaje 0–100) está ausente o
// en cero.
func Retencion(f *entity.Factura) decimal.Decimal {
	if f.MontoRetencion == nil || f.MontoRetencion.IsZero() {
		return decimal.Zero
	}
	return BaseGravable(f).Mul(*f.MontoRetencion).Div(cien)
}

// RealAPagar parte del total nominal y descuenta retención y pronto pago.
//
// Ambas deducciones se calculan sobre la MISMA base gravable y se restan por
// separado del total: el pronto pago no se aplica sobre el monto ya retenido.
// Es el comportamiento heredado del sistema anterior y se conserva tal cual;
// no es un pronunciamiento sobre el tratamiento contable correcto.
func RealAPagar(f *entity.Factura) decimal.Decimal {
	real := f.TotalAPagar
	if f.TieneRetencion != nil && *f.TieneRetencion && f.MontoRetencion != nil && !f.MontoRetencion.IsZero() {
		real = real.Sub(Retencion(f))
	}
	if f.PorcentajeProntoPago != nil && f.PorcentajeProntoPago.IsPositive() {
		real = real.Sub(BaseGravable(f).Mul(*f.PorcentajeProntoPago).Div(cien))
	}
	return real
}

// RealEfectivo es la derivación canónica de valor_real_a_pagar: parte del
// total efectivo (ajustado por notas de crédito) y le aplica las mismas
// deducciones de RealAPagar. Para una nota de crédito ligada el resultado es
// 0 aunque traiga retención o pronto pago: no debe nada y las deducciones no
// la vuelven negativa.
func RealEfectivo(f *entity.Factura) decimal.Decimal {
	if entity.ParseNotas(f.Notas).Tipo == entity.NotasVinculoNotaCredito {
		return decimal.Zero
	}
	deducciones := f.TotalAPagar.Sub(RealAPagar(f))
	return TotalEfectivo(f).Sub(deducciones)
}

// TotalEfectivo resuelve el efecto de las notas de crédito sobre el total:
//
//   - la factura es una nota de crédito ligada a su original → 0 (su efecto
//     se materializa reduciendo la factura original, no sumando por su cuenta)
//   - trae lista de créditos aplicados → total - Σ valor_descuento
//   - trae total_con_descuentos precalculado → ese valor
//   - en cualquier otro caso → total_a_pagar sin cambios
func TotalEfectivo(f *entity.Factura) decimal.Decimal {
	n := entity.ParseNotas(f.Notas)
	switch n.Tipo {
	case entity.NotasVinculoNotaCredito:
		return decimal.Zero
	case entity.NotasCreditosAplicados:
		total := f.TotalAPagar
		for _, c := range n.Creditos {
			total = total.Sub(c.ValorDescuento)
		}
		return total
	case entity.NotasTotalConDescuentos:
		return n.TotalConDescuentos
	}
	return f.TotalAPagar
}
