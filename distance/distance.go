// Package distance precomputes shortest hop counts between the valves a
// search can ever stand on: the start valve and every rate-bearing valve.
//
// Rationale (succinct):
//  1. The search only ever moves between key valves, so the zero-rate valves
//     in between collapse into a single hop count per ordered pair.
//  2. One bfs.Walk per key valve over the full tunnel graph; zero-rate valves
//     are traversed but never recorded. Each walk stops once every key valve
//     has a depth.
//  3. Distances live in a dense row-major buffer indexed by key position,
//     like the prefetched weight buffer of a branch-and-bound engine, so the
//     search reads them without map lookups.
//
// Index layout:
//   - Rate-bearing valves sorted by ID occupy indices 0..k-1, so a 64-bit
//     mask over those indices is an activated set.
//   - The start valve takes index k unless it is rate-bearing itself.
//
// Complexity:
//   - Build: O(K·(V+E)) time for K key valves, O(K²) memory.
//   - At/Get: O(1).
package distance

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/valvenet/bfs"
	"github.com/katalvlaran/valvenet/network"
)

// MaxRateBearing is the largest number of rate-bearing valves a Table accepts.
const MaxRateBearing = 64

// Sentinel errors for oracle construction and queries.
var (
	// ErrNetworkNil is returned when Build receives a nil network.
	ErrNetworkNil = errors.New("distance: network is nil")

	// ErrStartNotFound is returned when the start valve is not in the network.
	ErrStartNotFound = errors.New("distance: start valve not found")

	// ErrUnreachable marks disconnected input: some key valve cannot reach another.
	ErrUnreachable = errors.New("distance: valve unreachable")

	// ErrTooManyValves is returned when more than MaxRateBearing valves have a rate.
	ErrTooManyValves = errors.New("distance: too many rate-bearing valves")

	// ErrUnknownKey is returned by Get for IDs outside the key set.
	ErrUnknownKey = errors.New("distance: valve is not a key valve")

	// ErrAsymmetric is returned by Validate when d(a,b) != d(b,a).
	ErrAsymmetric = errors.New("distance: asymmetric distance")

	// ErrTriangle is returned by Validate when the triangle inequality fails.
	ErrTriangle = errors.New("distance: triangle inequality violated")
)

// Option configures Build.
type Option func(*options)

type options struct {
	ctx context.Context
}

// WithContext makes Build abort when ctx is cancelled.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// Table is the read-only all-pairs hop-count table over key valves.
type Table struct {
	ids         []string
	index       map[string]int
	start       int
	rateBearing int
	d           []int // d[i*n+j]
}

// Build runs one BFS per key valve and fills the table.
//
// Errors:
//   - ErrNetworkNil, ErrStartNotFound, ErrTooManyValves for bad arguments.
//   - ErrUnreachable (wrapped with both IDs) for disconnected input.
//   - Context errors when cancelled.
func Build(net *network.Network, start string, opts ...Option) (*Table, error) {
	o := options{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if net == nil {
		return nil, ErrNetworkNil
	}
	if !net.HasVertex(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}

	rb := net.RateBearing()
	if len(rb) > MaxRateBearing {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyValves, len(rb), MaxRateBearing)
	}

	t := &Table{
		ids:         rb,
		index:       make(map[string]int, len(rb)+1),
		rateBearing: len(rb),
	}
	for i, id := range rb {
		t.index[id] = i
	}
	if i, ok := t.index[start]; ok {
		t.start = i
	} else {
		t.start = len(t.ids)
		t.ids = append(t.ids, start)
		t.index[start] = t.start
	}

	n := len(t.ids)
	t.d = make([]int, n*n)
	for i, src := range t.ids {
		res, err := bfs.Walk(net, src, bfs.WithContext(o.ctx), bfs.WithTargets(t.ids...))
		if err != nil {
			return nil, fmt.Errorf("distance: walk from %q: %w", src, err)
		}
		for j, dst := range t.ids {
			hops, ok := res.Depth[dst]
			if !ok {
				return nil, fmt.Errorf("%w: %q -> %q", ErrUnreachable, src, dst)
			}
			t.d[i*n+j] = hops
		}
	}

	return t, nil
}

// Len returns the number of key valves.
func (t *Table) Len() int { return len(t.ids) }

// RateBearing returns k, the number of rate-bearing valves (indices 0..k-1).
func (t *Table) RateBearing() int { return t.rateBearing }

// Start returns the index of the start valve.
func (t *Table) Start() int { return t.start }

// StartID returns the ID of the start valve.
func (t *Table) StartID() string { return t.ids[t.start] }

// Keys returns the key valve IDs in index order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// ID returns the valve ID at index i.
func (t *Table) ID(i int) string { return t.ids[i] }

// Index returns the index of id, if it is a key valve.
func (t *Table) Index(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// At returns the hop count between key indices i and j. It does not bounds-check.
func (t *Table) At(i, j int) int { return t.d[i*len(t.ids)+j] }

// Get returns the hop count between two key valves by ID.
func (t *Table) Get(a, b string) (int, error) {
	i, ok := t.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, a)
	}
	j, ok := t.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, b)
	}
	return t.At(i, j), nil
}

// Validate re-checks the shortest-path invariants: symmetry and the
// triangle inequality. Symmetry only holds for networks whose tunnels are
// mirrored; callers with one-way tunnels should not expect it.
//
// Complexity: O(K³).
func (t *Table) Validate() error {
	n := len(t.ids)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if t.At(i, j) != t.At(j, i) {
				return fmt.Errorf("%w: %q/%q", ErrAsymmetric, t.ids[i], t.ids[j])
			}
			for m := 0; m < n; m++ {
				if t.At(i, m) > t.At(i, j)+t.At(j, m) {
					return fmt.Errorf("%w: %q -> %q via %q", ErrTriangle, t.ids[i], t.ids[m], t.ids[j])
				}
			}
		}
	}
	return nil
}
