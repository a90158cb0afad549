package prefab

import (
	"errors"
	"reflect"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/axiom/probe"
)

// put records the pair for exactly the type T, which allows seeding
// interface types like error and any with concrete substitutes.
func put[T any](entries map[reflect.Type]probe.Pair, red, black, redCopy T) {
	entries[reflect.TypeOf((*T)(nil)).Elem()] = probe.Pair{Red: red, Black: black, RedCopy: redCopy}
}

// seedCatalogue fills entries with the built-in pairs: the basic kinds,
// the time package's value types, and a handful of widely used library
// types whose internals are awkward to fabricate field by field.
//
// Every red value is unequal to its black partner, and every RedCopy is
// equal to its red but, for reference types, a distinct referent.
func seedCatalogue(entries map[reflect.Type]probe.Pair) {
	put(entries, true, false, true)
	put(entries, "red", "black", "red")

	put(entries, int(1), int(2), int(1))
	put[int8](entries, 1, 2, 1)
	put[int16](entries, 1, 2, 1)
	put[int32](entries, 1, 2, 1)
	put[int64](entries, 1, 2, 1)
	put[uint](entries, 1, 2, 1)
	put[uint8](entries, 1, 2, 1)
	put[uint16](entries, 1, 2, 1)
	put[uint32](entries, 1, 2, 1)
	put[uint64](entries, 1, 2, 1)
	put[uintptr](entries, 1, 2, 1)
	put[float32](entries, 0.5, 0.25, 0.5)
	put[float64](entries, 0.5, 0.25, 0.5)
	put[complex64](entries, 1+2i, 3+4i, 1+2i)
	put[complex128](entries, 1+2i, 3+4i, 1+2i)

	put(entries, []byte{1}, []byte{2}, []byte{1})

	put(entries,
		time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2001, time.February, 3, 4, 5, 6, 7, time.UTC),
		time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC))
	put(entries, time.Second, time.Minute, time.Second)
	put(entries, time.January, time.February, time.January)
	put(entries,
		time.FixedZone("red", 3600),
		time.FixedZone("black", 7200),
		time.FixedZone("red", 3600))

	put[error](entries,
		errors.New("red error"),
		errors.New("black error"),
		errors.New("red error"))
	put[any](entries, "red object", "black object", "red object")

	put(entries,
		uuid.MustParse("cafe0000-0000-4000-8000-000000000001"),
		uuid.MustParse("cafe0000-0000-4000-8000-000000000002"),
		uuid.MustParse("cafe0000-0000-4000-8000-000000000001"))
	put(entries, language.English, language.Japanese, language.English)
	put(entries, norm.NFC, norm.NFD, norm.NFC)
}
