package prefab

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ValueError is returned when the pool cannot provide or construct a
// prefab pair for a type.
//
// Pair construction fails for:
//   - Interface types with no registered substitutes
//   - Types with no observable mutable state (zero-length arrays,
//     structs whose fields are all const)
//   - Value graphs whose generation exceeds the recursion budget
//   - Registered or generated pairs that collapse to equality
//
// ValueError includes structured fields for diagnostics and recovery.
type ValueError struct {
	// Type is the type for which no pair could be produced. For
	// failures inside a recursive generation this is the innermost
	// offending type, not the type originally requested.
	Type reflect.Type

	// Path is the field path from the requested type down to Type.
	// Empty when the requested type itself failed.
	Path []string

	// Reason describes why no pair could be produced.
	Reason string

	err error
}

// Error implements the error interface.
func (e *ValueError) Error() string {
	msg := fmt.Sprintf("no prefab pair for %v", e.Type)
	if len(e.Path) > 0 {
		msg = fmt.Sprintf("no prefab pair for %v (reached via %s)", e.Type, strings.Join(e.Path, "."))
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.err != nil {
		msg += ": " + e.err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ValueError) Unwrap() error { return e.err }

// IsValueError reports whether err is a ValueError. Uses errors.As to
// handle wrapped errors.
func IsValueError(err error) bool {
	var ve *ValueError
	return errors.As(err, &ve)
}

// valueErr builds a ValueError for t at path with a formatted reason.
func valueErr(t reflect.Type, path []string, format string, args ...any) *ValueError {
	return &ValueError{Type: t, Path: append([]string(nil), path...), Reason: fmt.Sprintf(format, args...)}
}
