package probe

import (
	"fmt"
	"reflect"
	"sync"
)

// TagKey is the struct tag key probe inspects on every field.
const TagKey = "probe"

// tagConst marks a field as frozen: readable, never written.
const tagConst = "const"

// Field describes one instance field of a struct type: its name, its
// declared value type, the struct type that declares it, and whether it
// is exempt from mutation. Fields are produced by FieldsOf, OwnFieldsOf
// and ObjectAccessor.Fields; the zero Field is not meaningful.
type Field struct {
	// Name is the field name as declared.
	Name string

	// Type is the field's declared value type.
	Type reflect.Type

	// Declaring is the struct type the field is declared on. For
	// inherited fields this is an ancestor, not the enumeration root.
	Declaring reflect.Type

	// Const reports the `probe:"const"` tag: the field is readable but
	// Set and Change leave it untouched.
	Const bool

	// index is the traversal path from the enumeration root down the
	// embedding chain to the field. The final element is the field's
	// position within Declaring.
	index []int
}

// String renders the field as declaring-type.name for diagnostics.
func (f Field) String() string {
	if f.Declaring == nil {
		return f.Name
	}
	return fmt.Sprintf("%v.%s", f.Declaring, f.Name)
}

// typeInfo is the cached per-type metadata: the deep field sequence,
// the own-field subsequence, and the ancestor chain.
type typeInfo struct {
	fields    []Field
	own       []Field
	ancestors []reflect.Type
}

var (
	typeInfoMu    sync.RWMutex
	typeInfoCache = map[reflect.Type]*typeInfo{}
)

// infoFor returns the cached metadata for t, computing it on first use.
// Concurrent callers may compute the same record; the duplicates are
// identical, so last-write-wins is harmless.
func infoFor(t reflect.Type) (*typeInfo, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("probe: %v is not a struct type", t)
	}

	typeInfoMu.RLock()
	info, ok := typeInfoCache[t]
	typeInfoMu.RUnlock()
	if ok {
		return info, nil
	}

	info = buildInfo(t)

	typeInfoMu.Lock()
	typeInfoCache[t] = info
	typeInfoMu.Unlock()
	return info, nil
}

// buildInfo derives the metadata record for a struct type: own fields
// in declaration order, then each ancestor's own fields, walking the
// embedding chain. The ancestor link field itself is never enumerated;
// its contents appear as the inherited fields. Blank fields are
// skipped.
func buildInfo(t reflect.Type) *typeInfo {
	info := &typeInfo{ancestors: []reflect.Type{t}}

	parentIdx := ancestorIndex(t)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" || i == parentIdx {
			continue
		}
		info.own = append(info.own, Field{
			Name:      sf.Name,
			Type:      sf.Type,
			Declaring: t,
			Const:     sf.Tag.Get(TagKey) == tagConst,
			index:     []int{i},
		})
	}
	info.fields = append(info.fields, info.own...)

	if parentIdx >= 0 {
		parent := t.Field(parentIdx).Type
		pinfo, err := infoFor(parent)
		if err == nil {
			for _, pf := range pinfo.fields {
				inherited := pf
				inherited.index = append([]int{parentIdx}, pf.index...)
				info.fields = append(info.fields, inherited)
			}
			info.ancestors = append(info.ancestors, pinfo.ancestors...)
		}
	}
	return info
}

// ancestorIndex returns the index of t's ancestor link: the first
// embedded field of struct kind. Returns -1 when t has no ancestor.
// Embedded interfaces, embedded pointers and embedded named non-struct
// types are ordinary own fields.
func ancestorIndex(t reflect.Type) int {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			return i
		}
	}
	return -1
}

// FieldsOf enumerates the instance fields of struct type t: t's own
// fields in declaration order, followed by the fields of each ancestor
// in chain order. Every (declaring type, name) pair appears exactly
// once; a field that shadows an ancestor's field of the same name is
// still listed alongside it, because both exist in the instance.
func FieldsOf(t reflect.Type) ([]Field, error) {
	info, err := infoFor(t)
	if err != nil {
		return nil, err
	}
	out := make([]Field, len(info.fields))
	copy(out, info.fields)
	return out, nil
}

// OwnFieldsOf enumerates only the fields declared directly on t,
// excluding everything inherited through the embedding chain.
func OwnFieldsOf(t reflect.Type) ([]Field, error) {
	info, err := infoFor(t)
	if err != nil {
		return nil, err
	}
	out := make([]Field, len(info.own))
	copy(out, info.own)
	return out, nil
}

// AncestorChain returns t followed by its ancestors in embedding order.
// A type with no embedded struct yields a one-element chain.
func AncestorChain(t reflect.Type) ([]reflect.Type, error) {
	info, err := infoFor(t)
	if err != nil {
		return nil, err
	}
	out := make([]reflect.Type, len(info.ancestors))
	copy(out, info.ancestors)
	return out, nil
}

// pathToType locates target within container's embedding graph and
// returns the traversal path to it. The empty path means container is
// target itself. Only anonymous struct fields are descended into, so
// the path always stays within addressable by-value storage.
func pathToType(container, target reflect.Type) ([]int, bool) {
	if container == target {
		return nil, true
	}
	if container == nil || container.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < container.NumField(); i++ {
		sf := container.Field(i)
		if !sf.Anonymous || sf.Type.Kind() != reflect.Struct {
			continue
		}
		if p, ok := pathToType(sf.Type, target); ok {
			return append([]int{i}, p...), true
		}
	}
	return nil, false
}

// walk descends from an addressable struct value along an index path.
func walk(root reflect.Value, path []int) reflect.Value {
	v := root
	for _, i := range path {
		v = v.Field(i)
	}
	return v
}
