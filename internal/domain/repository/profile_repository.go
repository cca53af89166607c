package repository

import (
	"context"

	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
)

// ProfileRepository acceso a los perfiles de usuario del panel.
// La identidad la emite el proveedor externo; esto es solo lectura de apoyo.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	List(ctx context.Context) ([]*entity.Profile, error)
}
