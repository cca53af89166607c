package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-pro/internal/application/dto"
	"github.com/tu-usuario/facturas-pro/internal/domain"
	"github.com/tu-usuario/facturas-pro/internal/domain/entity"
	"github.com/tu-usuario/facturas-pro/internal/domain/repository"
)

// PerfilHandler lectura de perfiles de usuario del panel (protegido).
// Solo consulta: la identidad y las altas las maneja el proveedor externo.
type PerfilHandler struct {
	perfiles repository.ProfileRepository
}

// NewPerfilHandler construye el handler.
func NewPerfilHandler(perfiles repository.ProfileRepository) *PerfilHandler {
	return &PerfilHandler{perfiles: perfiles}
}

// Me devuelve el perfil del usuario autenticado.
// GET /api/perfiles/me
func (h *PerfilHandler) Me(c *fiber.Ctx) error {
	p, err := h.perfiles.GetByID(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if p == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(armarPerfil(p))
}

// List lista todos los perfiles (solo admin).
// GET /api/perfiles
func (h *PerfilHandler) List(c *fiber.Ctx) error {
	perfiles, err := h.perfiles.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PerfilResponse, 0, len(perfiles))
	for _, p := range perfiles {
		out = append(out, armarPerfil(p))
	}
	return c.JSON(out)
}

func armarPerfil(p *entity.Profile) dto.PerfilResponse {
	return dto.PerfilResponse{ID: p.ID, Email: p.Email, Nombre: p.Nombre, Rol: p.Rol}
}
