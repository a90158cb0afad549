package prefab

import (
	"reflect"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/axiom/probe"
)

// generator serves one top-level Pair request. It shares the pool's
// entry map (the caller holds the pool lock) and tracks which types are
// mid-generation so reference cycles are broken instead of recursed
// into.
type generator struct {
	pool       *Pool
	inProgress map[reflect.Type]bool
}

// pairFor returns the pair for t, consulting the memo first. Newly
// generated pairs are memoized immediately, so every type in a value
// graph is generated at most once per pool.
func (g *generator) pairFor(t reflect.Type, path []string, depth int) (probe.Pair, error) {
	if pair, ok := g.pool.entries[t]; ok {
		return pair, nil
	}
	if depth > g.pool.maxDepth {
		return probe.Pair{}, valueErr(t, path, "value graph deeper than %d levels does not bottom out", g.pool.maxDepth)
	}
	g.inProgress[t] = true
	defer delete(g.inProgress, t)

	g.pool.logger.Debug("generating prefab pair", "type", t.String(), "depth", depth)
	pair, err := g.generate(t, path, depth)
	if err != nil {
		return probe.Pair{}, err
	}
	g.pool.entries[t] = pair
	return pair, nil
}

func (g *generator) generate(t reflect.Type, path []string, depth int) (probe.Pair, error) {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return basicPair(t), nil
	case reflect.Pointer:
		return g.pointerPair(t, path, depth)
	case reflect.Slice:
		return g.slicePair(t, path, depth)
	case reflect.Array:
		return g.arrayPair(t, path, depth)
	case reflect.Map:
		return g.mapPair(t, path, depth)
	case reflect.Chan:
		return chanPair(t), nil
	case reflect.Func:
		return funcPair(t), nil
	case reflect.Struct:
		return g.structPair(t, path, depth)
	case reflect.Interface:
		return probe.Pair{}, valueErr(t, path, "interface types have no canonical values; Register two concrete substitutes")
	case reflect.UnsafePointer:
		return probe.Pair{}, valueErr(t, path, "unsafe.Pointer values cannot be fabricated")
	}
	return probe.Pair{}, valueErr(t, path, "unsupported kind %v", t.Kind())
}

// basicPair builds the pair for a named basic type by converting the
// canonical kind values. The unnamed basics come from the catalogue and
// never reach this.
func basicPair(t reflect.Type) probe.Pair {
	conv := func(v any) any { return reflect.ValueOf(v).Convert(t).Interface() }
	pairOf := func(red, black any) probe.Pair {
		return probe.Pair{Red: conv(red), Black: conv(black), RedCopy: conv(red)}
	}
	switch t.Kind() {
	case reflect.Bool:
		return pairOf(true, false)
	case reflect.String:
		return pairOf("red", "black")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return pairOf(int64(1), int64(2))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return pairOf(uint64(1), uint64(2))
	case reflect.Float32, reflect.Float64:
		return pairOf(float64(0.5), float64(0.25))
	default:
		return pairOf(complex128(1+2i), complex128(3+4i))
	}
}

func (g *generator) pointerPair(t reflect.Type, path []string, depth int) (probe.Pair, error) {
	elem := t.Elem()
	if g.inProgress[elem] {
		// Cycle: elem's own pair is being built above us. A typed nil
		// against a pointer to a zero elem still differs, which is how
		// self-referential graphs bottom out.
		red := reflect.Zero(t).Interface()
		black := reflect.New(elem).Convert(t).Interface()
		return probe.Pair{Red: red, Black: black, RedCopy: red}, nil
	}
	ep, err := g.pairFor(elem, append(path, "*"), depth+1)
	if err != nil {
		return probe.Pair{}, err
	}
	box := func(v any) any {
		p := reflect.New(elem)
		p.Elem().Set(reflect.ValueOf(v))
		return p.Convert(t).Interface()
	}
	return probe.Pair{Red: box(ep.Red), Black: box(ep.Black), RedCopy: box(ep.RedCopy)}, nil
}

func (g *generator) slicePair(t reflect.Type, path []string, depth int) (probe.Pair, error) {
	elem := t.Elem()
	single := func(v reflect.Value) any {
		s := reflect.MakeSlice(t, 1, 1)
		s.Index(0).Set(v)
		return s.Interface()
	}
	if g.inProgress[elem] {
		// Length carries the difference when the element cannot.
		return probe.Pair{
			Red:     reflect.MakeSlice(t, 0, 0).Interface(),
			Black:   single(reflect.Zero(elem)),
			RedCopy: reflect.MakeSlice(t, 0, 0).Interface(),
		}, nil
	}
	ep, err := g.pairFor(elem, append(path, "[]"), depth+1)
	if err != nil {
		return probe.Pair{}, err
	}
	return probe.Pair{
		Red:     single(reflect.ValueOf(ep.Red)),
		Black:   single(reflect.ValueOf(ep.Black)),
		RedCopy: single(reflect.ValueOf(ep.RedCopy)),
	}, nil
}

func (g *generator) arrayPair(t reflect.Type, path []string, depth int) (probe.Pair, error) {
	if t.Len() == 0 {
		return probe.Pair{}, valueErr(t, path, "zero-length arrays hold no state; red and black could never differ")
	}
	ep, err := g.pairFor(t.Elem(), append(path, "[0]"), depth+1)
	if err != nil {
		return probe.Pair{}, err
	}
	fill := func(v any) any {
		a := reflect.New(t).Elem()
		a.Index(0).Set(reflect.ValueOf(v))
		return a.Interface()
	}
	return probe.Pair{Red: fill(ep.Red), Black: fill(ep.Black), RedCopy: fill(ep.RedCopy)}, nil
}

func (g *generator) mapPair(t reflect.Type, path []string, depth int) (probe.Pair, error) {
	key, elem := t.Key(), t.Elem()
	single := func(k, v reflect.Value) any {
		m := reflect.MakeMap(t)
		m.SetMapIndex(k, v)
		return m.Interface()
	}
	if g.inProgress[key] || g.inProgress[elem] {
		return probe.Pair{
			Red:     reflect.MakeMap(t).Interface(),
			Black:   single(reflect.Zero(key), reflect.Zero(elem)),
			RedCopy: reflect.MakeMap(t).Interface(),
		}, nil
	}
	kp, err := g.pairFor(key, append(path, "key"), depth+1)
	if err != nil {
		return probe.Pair{}, err
	}
	ep, err := g.pairFor(elem, append(path, "value"), depth+1)
	if err != nil {
		return probe.Pair{}, err
	}
	return probe.Pair{
		Red:     single(reflect.ValueOf(kp.Red), reflect.ValueOf(ep.Red)),
		Black:   single(reflect.ValueOf(kp.Black), reflect.ValueOf(ep.Black)),
		RedCopy: single(reflect.ValueOf(kp.Red), reflect.ValueOf(ep.RedCopy)),
	}, nil
}

// chanPair makes two distinct channels. Channels compare by identity,
// so no copy can equal red without being red; RedCopy is red itself.
func chanPair(t reflect.Type) probe.Pair {
	bidi := reflect.ChanOf(reflect.BothDir, t.Elem())
	red := reflect.MakeChan(bidi, 0).Convert(t).Interface()
	black := reflect.MakeChan(bidi, 0).Convert(t).Interface()
	return probe.Pair{Red: red, Black: black, RedCopy: red}
}

// funcPair pairs the nil function with a zero-returning stub. Non-nil
// functions never compare equal, themselves included, so nil is the
// only red with a usable copy.
func funcPair(t reflect.Type) probe.Pair {
	stub := reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, t.NumOut())
		for i := range out {
			out[i] = reflect.Zero(t.Out(i))
		}
		return out
	})
	nilFn := reflect.Zero(t).Interface()
	return probe.Pair{Red: nilFn, Black: stub.Interface(), RedCopy: nilFn}
}

func (g *generator) structPair(t reflect.Type, path []string, depth int) (probe.Pair, error) {
	fields, err := probe.FieldsOf(t)
	if err != nil {
		return probe.Pair{}, &ValueError{Type: t, Path: append([]string(nil), path...), Reason: "enumerating fields", err: err}
	}
	mutable := 0
	for _, f := range fields {
		if !f.Const {
			mutable++
		}
	}
	if mutable == 0 {
		return probe.Pair{}, valueErr(t, path, "no mutable fields; red and black could never differ")
	}

	redP, blackP, copyP := reflect.New(t), reflect.New(t), reflect.New(t)
	redAcc, err := probe.Of(redP.Interface())
	if err != nil {
		return probe.Pair{}, &ValueError{Type: t, Path: append([]string(nil), path...), Reason: "wrapping instance", err: err}
	}
	blackAcc, _ := probe.Of(blackP.Interface())
	copyAcc, _ := probe.Of(copyP.Interface())

	for _, f := range fields {
		if f.Const {
			continue
		}
		fp, err := g.pairFor(f.Type, append(path, f.Name), depth+1)
		if err != nil {
			return probe.Pair{}, err
		}
		if err := redAcc.FieldAccessorFor(f).Set(fp.Red); err != nil {
			return probe.Pair{}, &ValueError{Type: t, Path: append(append([]string(nil), path...), f.Name), Reason: "filling field", err: err}
		}
		if err := blackAcc.FieldAccessorFor(f).Set(fp.Black); err != nil {
			return probe.Pair{}, &ValueError{Type: t, Path: append(append([]string(nil), path...), f.Name), Reason: "filling field", err: err}
		}
		if err := copyAcc.FieldAccessorFor(f).Set(fp.RedCopy); err != nil {
			return probe.Pair{}, &ValueError{Type: t, Path: append(append([]string(nil), path...), f.Name), Reason: "filling field", err: err}
		}
	}

	red, black, redCopy := redP.Elem().Interface(), blackP.Elem().Interface(), copyP.Elem().Interface()
	if probe.ValuesEqual(red, black) {
		return probe.Pair{}, valueErr(t, path, "%s", describeEqualPair(red, black))
	}
	return probe.Pair{Red: red, Black: black, RedCopy: redCopy}, nil
}

// describeEqualPair explains an unusable candidate pair, rendering the
// structural diff when the values differ structurally yet compare equal
// under the type's own equality.
func describeEqualPair(red, black any) string {
	d := cmp.Diff(red, black, cmp.Exporter(func(reflect.Type) bool { return true }))
	if d == "" {
		return "red and black are indistinguishable"
	}
	return "red and black compare equal despite differing structurally:\n" + d
}
