// Package probe provides reflective access to struct instances so that
// equality and hash contracts can be exercised without hand-written
// per-field test cases. It can instantiate types without running any
// user code, enumerate and rewrite individual fields behind visibility
// restrictions, and produce shallow clones and deterministically
// scrambled variants of a wrapped instance.
//
// # Inheritance model
//
// Go has no class inheritance, so probe models the single-inheritance
// chain the contract checks need through struct embedding: the ancestor
// of a struct type is the type of its first embedded (anonymous) struct
// field. Fields declared on ancestors are the inherited fields; all
// other fields, including later anonymous fields and pointer embeds,
// are own fields. A type S is a subtype of T when S embeds T, directly
// or transitively.
//
// # Immutable fields
//
// Fields tagged `probe:"const"` are readable but never written: Set and
// Change silently skip them. This is the explicit, queryable analogue
// of fields whose value is frozen at construction time. Blank (_)
// padding fields are ignored entirely.
//
// # Synthetic subtypes
//
// InstantiateSubtype builds a throwaway subtype at runtime with
// reflect.StructOf: a struct whose only field embeds the base type. The
// synthetic type is distinct from the base, which lets callers check
// that an equality implementation discriminates exact types. StructOf
// cannot embed unexported or unnamed types, so those are the
// unsubclassable case and report an InstantiationError.
//
// # Unsafe access
//
// All field reads and writes are routed through a reflect.NewAt view of
// the field's address. This is the only place in the module that uses
// package unsafe, and it is what makes unexported fields readable,
// settable and interfaceable.
//
// # Concurrency
//
// Accessors are plain bindings over caller-owned memory and perform
// unguarded read-modify-write on it. Nothing here may be invoked
// concurrently on the same instance; callers that share instances
// across goroutines must synchronize externally. The per-type metadata
// cache is safe for concurrent use.
package probe
