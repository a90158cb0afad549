// Package prefab supplies pairs of known-unequal values per type, the
// raw material the probe package uses to force observable change on
// struct fields.
//
// A Pool starts seeded with a catalogue of common types and grows
// lazily: the first request for an unknown type generates a pair by
// recursing over the type's structure, memoizing every intermediate
// type on the way. Within one pool the same request always returns the
// same pair, so replacement decisions built on pairs are repeatable.
//
// # Red, black, red copy
//
// Each pair holds a red and a black value that never compare equal, so
// whichever of the two a field currently holds, the other is a valid
// replacement. The pair also carries a copy of red, equal to red but,
// where the type permits it, a distinct referent, for probes that must
// tell equality apart from identity.
//
// # Limits
//
// Interface types have no canonical values; register two concrete
// substitutes with Register before scrambling fields of that type.
// Types with no observable mutable state, such as zero-length arrays
// and structs whose fields are all frozen, and value graphs deeper than
// the recursion budget yield a ValueError.
package prefab
