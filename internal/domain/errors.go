package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrConcurrencyConflict el kardex cambió entre la lectura y la escritura.
	ErrConcurrencyConflict = fmt.Errorf("kardex modificado concurrentemente: %w", ErrConflict)
)

// ValidationError entrada rechazada antes de cualquier escritura. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye el error de validación para un campo.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError el mes o la entrada referenciados no existen. errors.Is(err, ErrNotFound) es true.
type NotFoundError struct {
	Resource string // "month" | "entry"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DownstreamSyncWarning falló la actualización del stock visible del producto.
// No es fatal: el kardex quedó guardado y es la fuente de verdad.
type DownstreamSyncWarning struct {
	ProductID string
	TheaterID string
	Err       error
}

func (w *DownstreamSyncWarning) Error() string {
	return fmt.Sprintf("sincronizar stock del producto %s en teatro %s: %v", w.ProductID, w.TheaterID, w.Err)
}

func (w *DownstreamSyncWarning) Unwrap() error { return w.Err }
