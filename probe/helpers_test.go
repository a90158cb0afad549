package probe

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// Shared fixtures
// =============================================================================

// vehicle, car and sportsCar form the three-level embedding chain most
// tests run against.
type vehicle struct {
	Make    string
	mileage int
}

type car struct {
	vehicle
	Doors int
	vin   string `probe:"const"`
}

type sportsCar struct {
	car
	TopSpeed float64
}

// engineBlock is the flat fixture: mixed visibility, a frozen field and
// blank padding.
type engineBlock struct {
	Cylinders int
	bored     bool
	serial    string `probe:"const"`
	_         [4]byte
}

// shadowBase and shadowChild declare the same field name on both
// levels.
type shadowBase struct {
	Label string
}

type shadowChild struct {
	shadowBase
	Label string
}

// rig embeds more than one type: only the first embedded struct is the
// ancestor, everything after is an own field.
type trailer struct {
	Axles int
}

type rig struct {
	vehicle
	trailer
	*car
	Cargo string
}

// display holds an interface-typed field ahead of a plain one.
type display struct {
	Screen fmt.Stringer
	Brand  string
}

// refHolder carries only reference-typed fields, for shallowness
// checks.
type refHolder struct {
	Ptr   *int
	Items []string
	Table map[string]int
}

// Widget has an exported name, so the synthetic subtype tests can
// embed it.
type Widget struct {
	Label string
	count int
}

// Describable is the exported interface for synthetic subtype tests.
type Describable interface {
	Describe() string
}

// caseToken's Equal ignores case and the hit counter.
type caseToken struct {
	Word string
	Hits int
}

func (c caseToken) Equal(o caseToken) bool {
	return strings.EqualFold(c.Word, o.Word)
}

// counter's Equal takes pointer receivers on both sides.
type counter struct {
	N int
}

func (c *counter) Equal(o *counter) bool {
	return o != nil && c.N == o.N
}

// legacyID implements the Equals(any) convention.
type legacyID struct {
	Raw string
}

func (l legacyID) Equals(other any) bool {
	o, ok := other.(legacyID)
	return ok && strings.EqualFold(l.Raw, o.Raw)
}

// convoy chains vehicles nose to tail. Its Equal nil-checks the
// argument but not the receiver, the usual shape for linked types.
type convoy struct {
	Lead string
	Next *convoy
}

func (c *convoy) Equal(o *convoy) bool {
	if o == nil || c.Lead != o.Lead {
		return false
	}
	if c.Next == nil || o.Next == nil {
		return c.Next == o.Next
	}
	return c.Next.Equal(o.Next)
}

// logbook mirrors legacyID's Equals on a pointer receiver.
type logbook struct {
	Trips []string
}

func (l *logbook) Equals(other any) bool {
	o, ok := other.(*logbook)
	return ok && o != nil && len(l.Trips) == len(o.Trips)
}

// =============================================================================
// Shared helpers
// =============================================================================

// stubSource returns canned pairs per type, for driving Change without
// a real pool. Tests extend it with the entries they need.
type stubSource map[reflect.Type]Pair

func (s stubSource) Pair(t reflect.Type) (Pair, error) {
	p, ok := s[t]
	if !ok {
		return Pair{}, fmt.Errorf("no pair for %v", t)
	}
	return p, nil
}

// basicSource covers the field types of the shared fixtures.
func basicSource() stubSource {
	return stubSource{
		reflect.TypeOf((*int)(nil)).Elem():     {Red: 1, Black: 2, RedCopy: 1},
		reflect.TypeOf((*string)(nil)).Elem():  {Red: "red", Black: "black", RedCopy: "red"},
		reflect.TypeOf((*float64)(nil)).Elem(): {Red: 0.5, Black: 0.25, RedCopy: 0.5},
		reflect.TypeOf((*bool)(nil)).Elem():    {Red: true, Black: false, RedCopy: true},
	}
}

// mustOf wraps x or fails the test.
func mustOf(t *testing.T, x any) *ObjectAccessor {
	t.Helper()
	acc, err := Of(x)
	require.NoError(t, err)
	return acc
}

// fieldNamed returns the first field with the given name, which for
// shadowed names is the one declared closest to the enumeration root.
func fieldNamed(t *testing.T, acc *ObjectAccessor, name string) Field {
	t.Helper()
	for _, f := range acc.Fields() {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no field named %q on %v", name, acc.Type())
	return Field{}
}
