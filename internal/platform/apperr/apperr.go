// Package apperr define la taxonomía de errores que el core expone hacia afuera.
//
// Un registro ajeno y un registro inexistente producen el mismo ErrNotFound:
// el llamador nunca puede distinguirlos.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("unauthorized")
)

// NotFound envuelve ErrNotFound con el nombre de la entidad ("dog", "care task", ...).
func NotFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

func Auth(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuth, msg)
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsAuth(err error) bool       { return errors.Is(err, ErrAuth) }
