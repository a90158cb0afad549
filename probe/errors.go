package probe

import (
	"errors"
	"fmt"
	"reflect"
)

// InstantiationError is returned when a type cannot be allocated at
// all: interfaces with no concrete representation, and types that
// cannot be embedded in a synthetic subtype (unexported or unnamed
// names, non-struct non-interface kinds).
//
// The error carries the offending type so callers can build actionable
// diagnostics.
type InstantiationError struct {
	// Type is the type that could not be instantiated.
	Type reflect.Type

	// Reason describes why allocation failed.
	Reason string
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate %v: %s", e.Type, e.Reason)
}

// IsInstantiationError reports whether err is an InstantiationError.
// Uses errors.As to handle wrapped errors.
func IsInstantiationError(err error) bool {
	var ie *InstantiationError
	return errors.As(err, &ie)
}

// TypeMismatchError is returned when a requested type relationship does
// not hold: a subtype argument that does not embed the wrapped type, a
// copy target that lacks the field's declaring type, or a value that is
// not assignable to the field being set.
type TypeMismatchError struct {
	// Want is the type the operation required.
	Want reflect.Type

	// Got is the type that was actually supplied.
	Got reflect.Type

	// Field names the field involved, when the mismatch is per-field.
	// Empty for whole-type mismatches.
	Field string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %s: %v is not assignable to %v", e.Field, e.Got, e.Want)
	}
	return fmt.Sprintf("%v is not a subtype of %v", e.Got, e.Want)
}

// IsTypeMismatchError reports whether err is a TypeMismatchError.
// Uses errors.As to handle wrapped errors.
func IsTypeMismatchError(err error) bool {
	var te *TypeMismatchError
	return errors.As(err, &te)
}
