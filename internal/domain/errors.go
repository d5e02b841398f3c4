package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrStepNotFound      = errors.New("paso del roteiro no encontrado")
	ErrDanglingReference = errors.New("el botón apunta a un paso inexistente")
	ErrNoActiveSession   = errors.New("no hay una atención en curso")
	ErrUsernameTaken     = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrFileNotAllowed    = errors.New("archivo de roteiro no permitido")
	ErrStoreUnavailable  = errors.New("almacén no disponible")
)
