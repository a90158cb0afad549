package testutil

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Point is the flat fixture: one exported field and two unexported
// ones, no embedding.
type Point struct {
	X     int
	y     int
	label string
}

// ColoredPoint embeds Point and adds an own mutable field plus a frozen
// serial.
type ColoredPoint struct {
	Point
	Color  string
	Serial uint32 `probe:"const"`
}

// Node is the self-referential fixture.
type Node struct {
	Value int
	Next  *Node
}

// Paint is the abstract fixture dependency: an interface type with no
// canonical values.
type Paint interface {
	Shade() string
}

// SolidPaint is the concrete Paint substitute.
type SolidPaint struct {
	Hue string
}

// Shade implements Paint.
func (p SolidPaint) Shade() string { return p.Hue }

// Canvas declares its interface-typed field ahead of the plain one; a
// scramble that cannot fill the interface fails before reaching the
// rest of the instance.
type Canvas struct {
	Background Paint
	Name       string
}

// Passport exercises the pool catalogue's library types end to end.
type Passport struct {
	ID     uuid.UUID
	Issued time.Time
	Locale language.Tag
	Form   norm.Form
}

// hiddenRecord is the unsubclassable fixture: its type name is
// unexported, so synthetic subtyping must refuse it.
type hiddenRecord struct {
	Code int
}

// NewFixture constructs a fresh instance of the named fixture.
// Constructors are deterministic: consecutive calls return equal
// instances. The returned value is always a pointer to a struct.
func NewFixture(name string) (any, error) {
	switch name {
	case "point":
		return &Point{X: 3, y: 7, label: "origin"}, nil
	case "colored-point":
		return &ColoredPoint{
			Point:  Point{X: 3, y: 7, label: "origin"},
			Color:  "teal",
			Serial: 44,
		}, nil
	case "node":
		return &Node{Value: 1, Next: &Node{Value: 2}}, nil
	case "canvas":
		return &Canvas{Name: "easel"}, nil
	case "passport":
		return &Passport{
			ID:     uuid.MustParse("0198c2f0-2f2b-4d6e-9c1a-6d57a2f0c001"),
			Issued: time.Date(2024, time.March, 14, 9, 26, 53, 0, time.UTC),
			Locale: language.Dutch,
			Form:   norm.NFKC,
		}, nil
	case "hidden":
		return &hiddenRecord{Code: 9}, nil
	}
	return nil, fmt.Errorf("unknown fixture %q", name)
}

// RegistrationFor returns the substitute pair for the named
// registration set, used by scenarios to repair interface-typed fields.
func RegistrationFor(name string) (t reflect.Type, red, black any, err error) {
	switch name {
	case "paint":
		return reflect.TypeOf((*Paint)(nil)).Elem(), SolidPaint{Hue: "crimson"}, SolidPaint{Hue: "indigo"}, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown registration %q", name)
}
