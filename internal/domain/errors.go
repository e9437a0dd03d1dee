package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrInvalidID    = errors.New("identificador inválido")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrOverpayment  = errors.New("el abono supera el total adeudado")
)

// ValidationError error de forma de los datos; Message es legible para el usuario.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// PersistenceError falla genérica del almacenamiento (se muestra el mensaje crudo).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence envuelve err como PersistenceError; nil si err es nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
