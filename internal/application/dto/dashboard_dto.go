package dto

import "github.com/shopspring/decimal"

// ResumenDashboardDTO agregados de las tarjetas del panel principal.
type ResumenDashboardDTO struct {
	TotalFacturas      int             `json:"total_facturas"`
	SinClasificar      int             `json:"sin_clasificar"`
	Mercancia          int             `json:"mercancia"`
	Gasto              int             `json:"gasto"`
	Sistematizada      int             `json:"sistematizada"`
	NotasCredito       int             `json:"notas_credito"`
	PendientesPago     int             `json:"pendientes_pago"`
	Vencidas           int             `json:"vencidas"`
	MontoPendiente     decimal.Decimal `json:"monto_pendiente"`
	MontoRealPendiente decimal.Decimal `json:"monto_real_pendiente"`
}

// PerfilResponse perfil visible de un usuario del panel.
type PerfilResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
}
