package facturas

import (
	"context"

	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
	"github.com/tu-usuario/facturas-pro/internal/domain/valor"
)

// NotaCreditoUseCase liga una nota de crédito a su factura original.
//
// Escribe dos filas en una sola transacción: la nota queda con el vínculo en
// su campo notas (y clasificada como nota_credito) y la original acumula el
// crédito en su lista notas_credito. A partir de ahí el motor de cálculo
// resuelve los totales efectivos en lectura.
type NotaCreditoUseCase struct {
	txRunner TxRunner
}

// NewNotaCreditoUseCase construye el caso de uso.
func NewNotaCreditoUseCase(txRunner TxRunner) *NotaCreditoUseCase {
	return &NotaCreditoUseCase{txRunner: txRunner}
}

// Aplicar liga la nota de crédito in.NotaCreditoID a la factura facturaID.
func (uc *NotaCreditoUseCase) Aplicar(ctx context.Context, facturaID string, in dto.NotaCreditoRequest) (*dto.FacturaResponse, error) {
	if in.NotaCreditoID == "" || facturaID == in.NotaCreditoID {
		return nil, domain.ErrInvalidInput
	}
	if !in.ValorDescuento.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	var original *entity.Factura
	err := uc.txRunner.Run(ctx, func(repo repository.FacturaRepository) error {
		var err error
		original, err = repo.GetByID(ctx, facturaID)
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrNotFound
		}
		nota, err := repo.GetByID(ctx, in.NotaCreditoID)
		if err != nil {
			return err
		}
		if nota == nil {
			return domain.ErrNotFound
		}
		// Una factura ya clasificada como otra cosa no puede actuar como nota
		if nota.Clasificacion != "" && nota.Clasificacion != entity.ClasificacionNotaCredito {
			return domain.ErrNoEsNotaCredito
		}
		// La nota no puede estar ya ligada a otra factura
		if entity.ParseNotas(nota.Notas).Tipo == entity.NotasVinculoNotaCredito {
			return domain.ErrConflict
		}

		// Con el vínculo puesto, el valor real persistido de la nota es 0
		notasNota := entity.NotasVinculoJSON(original.ID, original.NumeroFactura)
		nota.Notas = &notasNota
		nota.Clasificacion = entity.ClasificacionNotaCredito
		realNota := valor.RealEfectivo(nota)
		if err := repo.UpdateClasificacion(ctx, nota.ID, entity.ClasificacionNotaCredito, nota.NumeroSerie, realNota); err != nil {
			return err
		}
		if err := repo.UpdateNotas(ctx, nota.ID, notasNota, realNota); err != nil {
			return err
		}

		notasOriginal := entity.AgregarCreditoAplicado(original.Notas, entity.NotaCreditoAplicada{
			FacturaID:      nota.ID,
			NumeroFactura:  nota.NumeroFactura,
			ValorDescuento: in.ValorDescuento,
		})
		original.Notas = &notasOriginal
		// La original descuenta el crédito recién aplicado en su valor real
		return repo.UpdateNotas(ctx, original.ID, notasOriginal, valor.RealEfectivo(original))
	})
	if err != nil {
		return nil, err
	}

	resp := ArmarFacturaResponse(original)
	return &resp, nil
}
