package probe

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Pair carries two interchangeable prefab values of one type that are
// unequal to each other, plus a copy of the first. Red and Black drive
// observable change: whichever one a field currently holds, the other
// is a valid replacement. RedCopy is equal to Red but never identical
// to it, for probes that must distinguish equality from identity.
type Pair struct {
	Red     any
	Black   any
	RedCopy any
}

// ValueSource supplies a prefab pair per type. The prefab package's
// Pool is the canonical implementation; tests may substitute their own.
type ValueSource interface {
	// Pair returns the pair for t, or an error when no pair can be
	// produced for it.
	Pair(t reflect.Type) (Pair, error)
}

// FieldAccessor binds one field of one live instance for reading and
// writing, bypassing visibility restrictions. Accessors are transient:
// obtain one from ObjectAccessor.FieldAccessorFor, use it, drop it.
// All side effects land on the bound instance, or on the explicit
// target of CopyTo.
type FieldAccessor struct {
	root  reflect.Value
	field Field
}

// Field returns the descriptor of the bound field.
func (fa *FieldAccessor) Field() Field { return fa.field }

// windowAt returns a settable view of the field at path under an
// addressable struct root, exported or not. Only this function touches
// unsafe.
func windowAt(root reflect.Value, path []int) reflect.Value {
	f := walk(root, path)
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

func (fa *FieldAccessor) window() reflect.Value {
	return windowAt(fa.root, fa.field.index)
}

// Get returns the field's current value. Unexported fields are read
// like any other.
func (fa *FieldAccessor) Get() any {
	return fa.window().Interface()
}

// Set writes value into the field. Fields tagged `probe:"const"` are
// left untouched and Set reports success; that silence is the frozen
// contract, not an oversight. A nil value writes the zero value for
// pointer, map, slice, chan, func and interface fields. Values that are
// not assignable to the field's type yield a *TypeMismatchError.
func (fa *FieldAccessor) Set(value any) error {
	if fa.field.Const {
		return nil
	}
	w := fa.window()
	if value == nil {
		switch fa.field.Type.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
			reflect.Func, reflect.Interface, reflect.UnsafePointer:
			w.Set(reflect.Zero(fa.field.Type))
			return nil
		}
		return &TypeMismatchError{Want: fa.field.Type, Field: fa.field.Name}
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(fa.field.Type) {
		return &TypeMismatchError{Want: fa.field.Type, Got: v.Type(), Field: fa.field.Name}
	}
	w.Set(v)
	return nil
}

// CopyTo writes the field's current value into the corresponding field
// of target, a non-nil pointer to a struct whose embedding chain
// contains the field's declaring type (*TypeMismatchError otherwise).
// The copy is shallow and includes const fields: reproducing an
// instance means reproducing all of it.
func (fa *FieldAccessor) CopyTo(target any) error {
	dst, err := structValueOf(target)
	if err != nil {
		return fmt.Errorf("copy %v: %w", fa.field, err)
	}
	path, ok := pathToType(dst.Type(), fa.field.Declaring)
	if !ok {
		return &TypeMismatchError{Want: fa.field.Declaring, Got: dst.Type()}
	}
	idx := make([]int, 0, len(path)+1)
	idx = append(idx, path...)
	idx = append(idx, fa.field.index[len(fa.field.index)-1])
	windowAt(dst, idx).Set(fa.window())
	return nil
}

// Change replaces the field's value with the other member of its prefab
// pair: Black when the current value equals Red, Red otherwise. The
// replacement is deterministic, depends only on the current value and
// the pair, and always differs from the current value because Red and
// Black are unequal. Const fields are left untouched with a nil error;
// pair lookup failures propagate.
func (fa *FieldAccessor) Change(src ValueSource) error {
	if fa.field.Const {
		return nil
	}
	pair, err := src.Pair(fa.field.Type)
	if err != nil {
		return fmt.Errorf("change %v: %w", fa.field, err)
	}
	cur := fa.window()
	if cur.Kind() == reflect.Interface {
		cur = cur.Elem()
	}
	next := pair.Red
	if valuesEqual(reflect.ValueOf(pair.Red), cur) {
		next = pair.Black
	}
	return fa.Set(next)
}
