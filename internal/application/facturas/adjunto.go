package facturas

import (
	"context"

	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
)

// AdjuntoUseCase resuelve la signed URL del PDF adjunto de una factura.
type AdjuntoUseCase struct {
	facturaRepo repository.FacturaRepository
	signer      StorageSigner
	expirySecs  int
}

// NewAdjuntoUseCase construye el caso de uso.
func NewAdjuntoUseCase(facturaRepo repository.FacturaRepository, signer StorageSigner, expirySecs int) *AdjuntoUseCase {
	if expirySecs <= 0 {
		expirySecs = 3600
	}
	return &AdjuntoUseCase{facturaRepo: facturaRepo, signer: signer, expirySecs: expirySecs}
}

// URLDelPDF devuelve una URL temporal de descarga para el adjunto.
func (uc *AdjuntoUseCase) URLDelPDF(ctx context.Context, facturaID string) (*dto.PDFURLResponse, error) {
	f, err := uc.facturaRepo.GetByID(ctx, facturaID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if f.PDFPath == nil || *f.PDFPath == "" {
		return nil, domain.ErrNotFound
	}
	url, err := uc.signer.SignedURL(ctx, *f.PDFPath, uc.expirySecs)
	if err != nil {
		return nil, err
	}
	return &dto.PDFURLResponse{URL: url, ExpiraEnSecs: uc.expirySecs}, nil
}
