package facturas

import (
	"context"

	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
)

// TxRunner ejecuta fn con un FacturaRepository atado a una transacción.
// Lo usa la aplicación de notas de crédito, que escribe dos filas.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.FacturaRepository) error) error
}

// StorageSigner genera signed URLs temporales para los PDFs adjuntos en el
// bucket de storage. La subida de archivos es responsabilidad de otro sistema.
type StorageSigner interface {
	SignedURL(ctx context.Context, path string, expirySecs int) (string, error)
}

// SerieSuggester es la interfaz que el flujo de clasificación consume del
// sugeridor ("" = sin sugerencia).
type SerieSuggester interface {
	SugerirSiguiente(ctx context.Context, emisorNIT string) string
}
