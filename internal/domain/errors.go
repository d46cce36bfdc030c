package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("error de persistencia")

	// ErrInUse borrado de un registro referenciado por ventas o compras. Es un ErrConflict.
	ErrInUse = fmt.Errorf("%w: registro con ventas o compras asociadas", ErrConflict)
)

// ValidationError indica campos obligatorios vacíos o inválidos.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields []string
}

// NewValidationError devuelve nil si no hay campos.
func NewValidationError(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "campos inválidos o vacíos: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// PersistenceError envuelve un fallo del almacenamiento (insert, update, delete, select).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrPersistence) sin perder el error original.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
