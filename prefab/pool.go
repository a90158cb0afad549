package prefab

import (
	"io"
	"log/slog"
	"reflect"
	"sync"

	"github.com/roach88/axiom/probe"
)

// defaultMaxDepth caps lazy pair generation. Deeper value graphs are
// treated as unresolvable.
const defaultMaxDepth = 16

// Pool hands out prefab value pairs per type. A pool is a per-session
// cache: the first request for a type generates and memoizes its pair,
// every later request returns the same pair. Pools start seeded with
// the built-in catalogue and grow through lazy generation and explicit
// registration.
type Pool struct {
	mu       sync.Mutex
	entries  map[reflect.Type]probe.Pair
	maxDepth int
	logger   *slog.Logger
}

var _ probe.ValueSource = (*Pool)(nil)

// Option configures a Pool.
type Option func(*Pool)

// WithLogger routes generation diagnostics to logger. The default
// discards them.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxDepth caps the recursion depth of lazy pair generation.
// The default is 16.
func WithMaxDepth(depth int) Option {
	return func(p *Pool) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// NewPool creates a pool seeded with the built-in catalogue.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		entries:  map[reflect.Type]probe.Pair{},
		maxDepth: defaultMaxDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	seedCatalogue(p.entries)
	return p
}

// Pair returns the prefab pair for t, generating and memoizing one on
// first request. Repeated requests for the same type within one pool
// return the same pair, so replacement decisions built on it stay
// deterministic for the whole session. Safe for concurrent use: lookup
// and population run under the pool lock, and population re-checks the
// cache at every level of the type graph.
func (p *Pool) Pair(t reflect.Type) (probe.Pair, error) {
	if t == nil {
		return probe.Pair{}, &ValueError{Reason: "no type"}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if pair, ok := p.entries[t]; ok {
		return pair, nil
	}
	g := &generator{pool: p, inProgress: map[reflect.Type]bool{}}
	pair, err := g.pairFor(t, nil, 0)
	if err != nil {
		return probe.Pair{}, err
	}
	return pair, nil
}

// Register installs red and black as the pair for t, replacing any
// built-in or generated entry. Both values must be assignable to t and
// must not compare equal (*ValueError otherwise). Interface types the
// generator refuses are the primary use: register two concrete
// substitutes once and every field of that interface type participates
// in scrambling. The pair's RedCopy is red itself, so identity probes
// against registered reference values see the same referent.
func (p *Pool) Register(t reflect.Type, red, black any) error {
	if t == nil {
		return &ValueError{Reason: "no type"}
	}
	rv, bv := reflect.ValueOf(red), reflect.ValueOf(black)
	if !rv.IsValid() || !bv.IsValid() {
		return valueErr(t, nil, "nil values cannot drive change; supply two concrete unequal values")
	}
	if !rv.Type().AssignableTo(t) {
		return valueErr(t, nil, "red value of type %v is not assignable to %v", rv.Type(), t)
	}
	if !bv.Type().AssignableTo(t) {
		return valueErr(t, nil, "black value of type %v is not assignable to %v", bv.Type(), t)
	}
	if probe.ValuesEqual(red, black) {
		return valueErr(t, nil, "%s", describeEqualPair(red, black))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[t] = probe.Pair{Red: red, Black: black, RedCopy: red}
	p.logger.Debug("registered prefab pair", "type", t.String())
	return nil
}
