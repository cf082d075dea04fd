package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrComponentNotFound  = errors.New("componente no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrEmptyBOM           = errors.New("el producto no tiene lista de materiales configurada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrConcurrentConflict = errors.New("conflicto de concurrencia sobre el stock")
	ErrPartialCommit      = errors.New("fallo al revertir un commit parcial: requiere conciliación manual")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
)

// InsufficientStockError indica qué componente quedó corto y por cuánto.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando en handlers.
type InsufficientStockError struct {
	ComponentID string
	Required    int64
	Available   int64
	Shortfall   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para componente %s: requerido %d, disponible %d (faltan %d)",
		e.ComponentID, e.Required, e.Available, e.Shortfall)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NewInsufficientStock construye el error con el faltante ya calculado.
func NewInsufficientStock(componentID string, required, available int64) *InsufficientStockError {
	return &InsufficientStockError{
		ComponentID: componentID,
		Required:    required,
		Available:   available,
		Shortfall:   required - available,
	}
}
