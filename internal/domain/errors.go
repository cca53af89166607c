package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrNoEsNotaCredito      = errors.New("la factura no puede actuar como nota de crédito")
	ErrSerieDuplicada       = errors.New("el número de serie ya existe para otro registro")
	ErrFirmaWebhookInvalida = errors.New("firma del webhook inválida")
)
