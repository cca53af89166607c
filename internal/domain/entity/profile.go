package entity

import "time"

// Roles de usuario del panel.
const (
	RolAdmin        = "admin"
	RolContabilidad = "contabilidad"
	RolConsulta     = "consulta"
)

// Profile es el perfil de un usuario del panel. La identidad la emite el
// proveedor externo; aquí solo se guarda lo necesario para mostrar y autorizar.
type Profile struct {
	ID        string
	Email     string
	Nombre    string
	Rol       string
	CreatedAt time.Time
}
