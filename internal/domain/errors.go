package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrAuthentication = errors.New("error de autenticación")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrNetwork        = errors.New("error de red")
	ErrNotLoggedIn    = errors.New("no hay sesión activa")
)
