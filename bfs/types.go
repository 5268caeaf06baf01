package bfs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrStartVertexNotFound means Walk was asked to start on an ID the
	// graph does not have.
	ErrStartVertexNotFound = errors.New("bfs: unknown start vertex")

	// ErrGraphNil means Walk received a nil Graph.
	ErrGraphNil = errors.New("bfs: nil graph")

	// ErrOptionViolation wraps a rejected Option value.
	ErrOptionViolation = errors.New("bfs: bad option")

	// ErrNeighbors wraps a failure of Graph.NeighborIDs.
	ErrNeighbors = errors.New("bfs: listing neighbors failed")

	// ErrNoPath is returned by PathTo for a vertex the walk never reached.
	ErrNoPath = errors.New("bfs: vertex not reached")
)

// Graph is the read-only surface BFS needs. *network.Network satisfies it.
type Graph interface {
	HasVertex(id string) bool
	NeighborIDs(id string) ([]string, error)
}

// Option mutates Options. A rejected value is remembered and reported by
// Walk as ErrOptionViolation.
type Option func(*Options)

// Options tunes one Walk.
type Options struct {
	Ctx context.Context

	// OnVisit runs as each vertex is dequeued; an error ends the walk.
	OnVisit func(id string, depth int) error

	// MaxDepth bounds how far from the start the walk expands; 0 means
	// unbounded.
	MaxDepth int

	// FilterNeighbor returning false hides the tunnel curr→neighbor.
	FilterNeighbor func(curr, neighbor string) bool

	// Targets, if non-empty, ends the walk as soon as every target has a
	// recorded depth. Depths are final once recorded, so the early exit
	// never changes a reported distance.
	Targets []string

	err error
}

// DefaultOptions walks everything reachable with no hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnVisit:        func(string, int) error { return nil },
		FilterNeighbor: func(string, string) bool { return true },
	}
}

// WithContext makes the walk stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx == nil {
			return
		}
		o.Ctx = ctx
	}
}

// WithOnVisit installs a visit hook. Nil keeps the default.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		o.OnVisit = fn
	}
}

// WithMaxDepth keeps vertices deeper than d out of the walk. Zero lifts the
// limit; a negative d is rejected.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: max depth %d is negative", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithFilterNeighbor installs a tunnel filter. Nil keeps the default.
func WithFilterNeighbor(fn func(curr, neighbor string) bool) Option {
	return func(o *Options) {
		if fn == nil {
			return
		}
		o.FilterNeighbor = fn
	}
}

// WithTargets stops the walk once every listed vertex has been discovered.
func WithTargets(ids ...string) Option {
	return func(o *Options) {
		o.Targets = append(o.Targets, ids...)
	}
}

// Result is what one Walk discovered. Order is the dequeue sequence, Depth
// the hop count of every discovered vertex and Parent its predecessor in
// the BFS tree (the start has none).
//
// With WithTargets the walk may stop early; Depth then holds every vertex
// discovered so far, which always includes all reachable targets.
type Result struct {
	Order  []string
	Depth  map[string]int
	Parent map[string]string
}

// PathTo follows Parent links back from dest and returns the start-to-dest
// vertex sequence.
func (r *Result) PathTo(dest string) ([]string, error) {
	d, ok := r.Depth[dest]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoPath, dest)
	}
	path := make([]string, d+1)
	cur := dest
	for i := d; i >= 0; i-- {
		path[i] = cur
		cur = r.Parent[cur]
	}

	return path, nil
}
