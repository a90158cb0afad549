package probe

import (
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Instantiator allocates instances of one type without running any
// user code. Go types have no constructors, so reflect.New already is
// the allocator-level path: a fresh zero instance, regardless of field
// visibility or whatever factory functions the type's package exposes.
type Instantiator struct {
	typ reflect.Type
}

// InstantiatorFor binds an Instantiator to t. Allocation failures are
// reported by the instantiate calls, not here.
func InstantiatorFor(t reflect.Type) *Instantiator {
	return &Instantiator{typ: t}
}

// Instantiate allocates a zero instance of the bound type and returns
// a pointer to it. Interfaces have no concrete representation and
// report an InstantiationError; every other kind allocates.
func (in *Instantiator) Instantiate() (any, error) {
	t := in.typ
	if t == nil {
		return nil, &InstantiationError{Type: t, Reason: "no type"}
	}
	if t.Kind() == reflect.Interface {
		return nil, &InstantiationError{
			Type:   t,
			Reason: "interface types have no concrete representation; register prefab substitutes or instantiate a synthetic subtype",
		}
	}
	return reflect.New(t).Interface(), nil
}

// InstantiateSubtype allocates an instance of the synthetic subtype of
// the bound type: a runtime-synthesized struct that embeds it. The
// returned instance's type differs from the bound type but satisfies
// IsSubtypeOf. Fails with an InstantiationError when no subtype can be
// synthesized.
func (in *Instantiator) InstantiateSubtype() (any, error) {
	synth, err := SyntheticSubtypeOf(in.typ)
	if err != nil {
		return nil, err
	}
	return reflect.New(synth).Interface(), nil
}

var (
	synthMu    sync.Mutex
	synthCache = map[reflect.Type]reflect.Type{}
)

// SyntheticSubtypeOf returns the runtime-synthesized subtype of t: a
// struct type whose single anonymous field embeds t. The synthetic type
// is derived once per base type and reused for the rest of the process.
//
// Synthesis requires a named, exported struct or interface type,
// because reflect.StructOf cannot create unexported or unnamed embedded
// fields. Types outside that set are the unsubclassable case and
// report an InstantiationError naming them.
func SyntheticSubtypeOf(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, &InstantiationError{Type: t, Reason: "no type"}
	}

	synthMu.Lock()
	defer synthMu.Unlock()
	if cached, ok := synthCache[t]; ok {
		return cached, nil
	}

	if k := t.Kind(); k != reflect.Struct && k != reflect.Interface {
		return nil, &InstantiationError{Type: t, Reason: "only struct and interface types can be subtyped"}
	}
	name := t.Name()
	if name == "" {
		return nil, &InstantiationError{Type: t, Reason: "unnamed types cannot be embedded in a synthetic subtype"}
	}
	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(r) {
		return nil, &InstantiationError{Type: t, Reason: "unexported types cannot be embedded in a synthetic subtype"}
	}

	synth := reflect.StructOf([]reflect.StructField{{
		Name:      name,
		Type:      t,
		Anonymous: true,
	}})
	synthCache[t] = synth
	return synth, nil
}

// IsSubtypeOf reports whether sub is base or embeds base, directly or
// transitively. This is the assignability relation the clone-into-
// subtype operations check.
func IsSubtypeOf(sub, base reflect.Type) bool {
	if sub == nil || base == nil {
		return false
	}
	if sub == base {
		return true
	}
	if sub.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < sub.NumField(); i++ {
		sf := sub.Field(i)
		if !sf.Anonymous {
			continue
		}
		if sf.Type == base || IsSubtypeOf(sf.Type, base) {
			return true
		}
	}
	return false
}
