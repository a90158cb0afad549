package probe

import "reflect"

// ValuesEqual reports whether a and b are equal under the rules the
// probe operations use throughout:
//
//  1. a custom Equal method with the signature Equal(T) bool, when the
//     type declares one,
//  2. otherwise a custom Equals method with the signature
//     Equals(any) bool,
//  3. otherwise reflect.DeepEqual.
//
// The custom method is invoked on a. A typed nil pointer never
// dispatches and is compared structurally instead, so an Equal with a
// pointer receiver is never run on a nil receiver. Values of different
// dynamic types are never equal.
func ValuesEqual(a, b any) bool {
	return valuesEqual(reflect.ValueOf(a), reflect.ValueOf(b))
}

func valuesEqual(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}
	if ok, eq := equalMethod(a, b); ok {
		return eq
	}
	if ok, eq := equalsAnyMethod(a, b); ok {
		return eq
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

// equalMethod invokes a's Equal method when it matches the
// Equal(T) bool or Equal(*T) bool shape. The first return value
// reports whether such a method was found and called. A nil pointer
// a never dispatches; nil against anything is decided structurally
// by the caller's fallback.
func equalMethod(a, b reflect.Value) (called, eq bool) {
	if a.Kind() == reflect.Pointer && a.IsNil() {
		return false, false
	}
	t := a.Type()
	m := a.MethodByName("Equal")
	if !m.IsValid() && a.Kind() != reflect.Pointer && a.Kind() != reflect.Interface {
		p := reflect.New(t)
		p.Elem().Set(a)
		m = p.MethodByName("Equal")
	}
	if !m.IsValid() {
		return false, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.Out(0) != reflect.TypeOf((*bool)(nil)).Elem() {
		return false, false
	}
	switch mt.In(0) {
	case t:
		return true, m.Call([]reflect.Value{b})[0].Bool()
	case reflect.PointerTo(t):
		pb := reflect.New(t)
		pb.Elem().Set(b)
		return true, m.Call([]reflect.Value{pb})[0].Bool()
	}
	return false, false
}

// equalsAnyMethod invokes a's Equals method when it matches the
// Equals(any) bool shape common to hand-rolled equality interfaces.
func equalsAnyMethod(a, b reflect.Value) (called, eq bool) {
	if a.Kind() == reflect.Pointer && a.IsNil() {
		return false, false
	}
	m := a.MethodByName("Equals")
	if !m.IsValid() && a.Kind() != reflect.Pointer && a.Kind() != reflect.Interface {
		p := reflect.New(a.Type())
		p.Elem().Set(a)
		m = p.MethodByName("Equals")
	}
	if !m.IsValid() {
		return false, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.In(0) != reflect.TypeOf((*any)(nil)).Elem() || mt.Out(0) != reflect.TypeOf((*bool)(nil)).Elem() {
		return false, false
	}
	return true, m.Call([]reflect.Value{b})[0].Bool()
}
