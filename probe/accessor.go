package probe

import (
	"fmt"
	"reflect"
)

// ObjectAccessor wraps one live instance and exposes the reflective
// operations on it: field access, cloning and scrambling. The wrapped
// instance is mutated in place; the accessor itself holds no state
// beyond the binding and may be discarded at any point.
type ObjectAccessor struct {
	original any
	view     reflect.Value
	typ      reflect.Type
}

// structValueOf validates that x is a non-nil pointer to a struct and
// returns the addressable struct value behind it.
func structValueOf(x any) (reflect.Value, error) {
	if x == nil {
		return reflect.Value{}, fmt.Errorf("probe: need a non-nil pointer to a struct, got nil")
	}
	v := reflect.ValueOf(x)
	if v.Kind() != reflect.Pointer || v.Type().Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("probe: need a non-nil pointer to a struct, got %T", x)
	}
	if v.IsNil() {
		return reflect.Value{}, fmt.Errorf("probe: need a non-nil pointer to a struct, got nil %v", v.Type())
	}
	return v.Elem(), nil
}

// Of wraps x, which must be a non-nil pointer to a struct. The
// accessor covers the full instance.
func Of(x any) (*ObjectAccessor, error) {
	v, err := structValueOf(x)
	if err != nil {
		return nil, err
	}
	return &ObjectAccessor{original: x, view: v, typ: v.Type()}, nil
}

// OfAs wraps x viewed as the ancestor type as: enumeration, cloning and
// scrambling cover only the embedded as-portion of x, while Get still
// returns x itself. as must appear in x's embedding chain
// (*TypeMismatchError otherwise).
func OfAs(x any, as reflect.Type) (*ObjectAccessor, error) {
	v, err := structValueOf(x)
	if err != nil {
		return nil, err
	}
	var path []int
	for t := v.Type(); t != as; {
		i := ancestorIndex(t)
		if i < 0 {
			return nil, &TypeMismatchError{Want: as, Got: v.Type()}
		}
		path = append(path, i)
		t = t.Field(i).Type
	}
	return &ObjectAccessor{original: x, view: walk(v, path), typ: as}, nil
}

// Get returns the wrapped instance as handed to Of or OfAs.
func (oa *ObjectAccessor) Get() any { return oa.original }

// Type returns the type the accessor covers: the instance's own type
// for Of, the ancestor view type for OfAs.
func (oa *ObjectAccessor) Type() reflect.Type { return oa.typ }

// Fields enumerates the covered type's fields, own and inherited, in
// enumeration order.
func (oa *ObjectAccessor) Fields() []Field {
	fs, _ := FieldsOf(oa.typ)
	return fs
}

// FieldAccessorFor binds f on the wrapped instance. f must come from
// this accessor's Fields.
func (oa *ObjectAccessor) FieldAccessorFor(f Field) *FieldAccessor {
	return &FieldAccessor{root: oa.view, field: f}
}

// Clone allocates a fresh instance of the covered type and copies every
// field into it, own and inherited, const included. The copy is
// shallow: reference-typed fields share their referents with the
// original. Returns a pointer to the fresh instance.
func (oa *ObjectAccessor) Clone() (any, error) {
	fresh, err := InstantiatorFor(oa.typ).Instantiate()
	if err != nil {
		return nil, err
	}
	if err := oa.copyInto(fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// CloneIntoSubtype allocates a fresh instance of sub, which must embed
// the covered type (*TypeMismatchError otherwise), and copies the
// covered portion into it field by field. Fields declared on sub itself
// stay zero.
func (oa *ObjectAccessor) CloneIntoSubtype(sub reflect.Type) (any, error) {
	if !IsSubtypeOf(sub, oa.typ) {
		return nil, &TypeMismatchError{Want: oa.typ, Got: sub}
	}
	fresh, err := InstantiatorFor(sub).Instantiate()
	if err != nil {
		return nil, err
	}
	if err := oa.copyInto(fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// CloneIntoSyntheticSubtype clones into the runtime-synthesized subtype
// of the covered type, deriving it first if this is its first use.
func (oa *ObjectAccessor) CloneIntoSyntheticSubtype() (any, error) {
	synth, err := SyntheticSubtypeOf(oa.typ)
	if err != nil {
		return nil, err
	}
	return oa.CloneIntoSubtype(synth)
}

func (oa *ObjectAccessor) copyInto(target any) error {
	for _, f := range oa.Fields() {
		if err := oa.FieldAccessorFor(f).CopyTo(target); err != nil {
			return fmt.Errorf("clone %v: %w", oa.typ, err)
		}
	}
	return nil
}

// Scramble gives every non-const covered field a different value, own
// and inherited. Equal instances scrambled against the same source stay
// equal, because each replacement depends only on the field's current
// value and the shared pair. Fails partway through when src cannot
// supply a pair for some field's type; fields already changed stay
// changed.
func (oa *ObjectAccessor) Scramble(src ValueSource) error {
	return oa.changeAll(src, oa.Fields())
}

// ShallowScramble changes only the fields declared directly on the
// covered type, leaving the inherited portion untouched.
func (oa *ObjectAccessor) ShallowScramble(src ValueSource) error {
	own, err := OwnFieldsOf(oa.typ)
	if err != nil {
		return err
	}
	return oa.changeAll(src, own)
}

func (oa *ObjectAccessor) changeAll(src ValueSource, fields []Field) error {
	for _, f := range fields {
		if err := oa.FieldAccessorFor(f).Change(src); err != nil {
			return err
		}
	}
	return nil
}
