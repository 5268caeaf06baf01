package bfs

import (
	"context"
	"fmt"
)

// step is one queued vertex and its hop count from the start.
type step struct {
	id    string
	depth int
}

// walker is the state of a single Walk. Depth doubles as the seen set.
type walker struct {
	g       Graph
	opts    Options
	ctx     context.Context
	queue   []step
	head    int
	missing map[string]struct{} // targets not discovered yet
	res     *Result
}

// Walk explores g level by level from start.
//
// Errors: ErrGraphNil, ErrOptionViolation, ErrStartVertexNotFound for bad
// input; ErrNeighbors when the graph fails; ctx.Err() on cancellation; an
// OnVisit error wrapped with the vertex it fired on. The partial Result is
// returned alongside any error raised during the walk.
func Walk(g Graph, start string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, start)
	}

	w := &walker{
		g:    g,
		opts: o,
		ctx:  o.Ctx,
		res:  &Result{Depth: map[string]int{}, Parent: map[string]string{}},
	}
	if len(o.Targets) > 0 {
		w.missing = make(map[string]struct{}, len(o.Targets))
		for _, id := range o.Targets {
			w.missing[id] = struct{}{}
		}
	}
	w.discover(start, 0, "")

	return w.res, w.run()
}

// discover records id at depth d and queues it. parent is empty only for
// the start vertex.
func (w *walker) discover(id string, d int, parent string) {
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	delete(w.missing, id)
	w.queue = append(w.queue, step{id: id, depth: d})
}

func (w *walker) run() error {
	for w.head < len(w.queue) {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if w.missing != nil && len(w.missing) == 0 {
			return nil
		}

		cur := w.queue[w.head]
		w.head++
		w.res.Order = append(w.res.Order, cur.id)
		if err := w.opts.OnVisit(cur.id, cur.depth); err != nil {
			return fmt.Errorf("bfs: visit %q: %w", cur.id, err)
		}
		if err := w.expand(cur); err != nil {
			return err
		}
	}
	return nil
}

// expand queues every unseen, unfiltered neighbor of cur within MaxDepth.
func (w *walker) expand(cur step) error {
	next := cur.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	nbrs, err := w.g.NeighborIDs(cur.id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrNeighbors, cur.id, err)
	}
	for _, n := range nbrs {
		if _, seen := w.res.Depth[n]; seen || !w.opts.FilterNeighbor(cur.id, n) {
			continue
		}
		w.discover(n, next, cur.id)
	}
	return nil
}
