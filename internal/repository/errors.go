// Package repository implements the persistent store client: typed
// repositories over database/sql issuing parameterized statements
// against the shop tables. Sentinel errors defined here let handlers
// map failures to HTTP codes without inspecting driver errors.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested entity does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ValidationError marks malformed or missing required input. It is
// raised before any store access and maps to HTTP 400.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
