package prefab

import "strings"

// litStr is the concrete fmt.Stringer substitute used for interface
// registrations.
type litStr string

func (l litStr) String() string { return string(l) }

// caseWord's Equal ignores case and the hit counter.
type caseWord struct {
	Text string
	Hits int
}

func (w caseWord) Equal(o caseWord) bool {
	return strings.EqualFold(w.Text, o.Text)
}

// looseID follows the Equals(any) convention, which structural diffing
// cannot see through.
type looseID struct {
	Raw  string
	Note string
}

func (l looseID) Equals(other any) bool {
	o, ok := other.(looseID)
	return ok && strings.EqualFold(l.Raw, o.Raw)
}

// alwaysSame defeats pair generation: no two values of it ever differ
// under its own equality.
type alwaysSame struct {
	N int
}

func (alwaysSame) Equal(alwaysSame) bool { return true }

// wagon is a self-referential list node. Its Equal nil-checks the
// argument but not the receiver, the usual shape for linked types.
type wagon struct {
	Tag  string
	Next *wagon
}

func (w *wagon) Equal(o *wagon) bool {
	if o == nil || w.Tag != o.Tag {
		return false
	}
	if w.Next == nil || o.Next == nil {
		return w.Next == o.Next
	}
	return w.Next.Equal(o.Next)
}
