package search

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/katalvlaran/valvenet/distance"
	"github.com/katalvlaran/valvenet/network"
)

// Engine holds everything the searches read: key-valve rates, the dense
// distance buffer and per-valve branching orders. It is never mutated after
// NewEngine, so one Engine may serve any number of concurrent searches.
type Engine struct {
	opts Options

	n     int   // key valves (rate-bearing + possibly the start)
	k     int   // rate-bearing valves, indices 0..k-1
	start int   // index of the start valve
	w     []int // w[u*n+v] hop counts
	rates []int // rates[v] for v < k

	// order[u] lists every rate-bearing v by ascending w[u→v], index
	// tiebreak. Near valves first tightens the incumbent early.
	order [][]int

	tab *distance.Table
}

// NewEngine prefetches the distance table and rates into dense buffers.
//
// Errors:
//   - ErrNilInput if net or tab is nil.
//   - ErrTableMismatch if tab names a valve that net does not have.
//   - ErrOptionViolation for negative Workers/TimeLimit or an unknown Bound.
func NewEngine(net *network.Network, tab *distance.Table, opts Options) (*Engine, error) {
	if net == nil || tab == nil {
		return nil, ErrNilInput
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	e := &Engine{
		opts:  opts,
		n:     tab.Len(),
		k:     tab.RateBearing(),
		start: tab.Start(),
		tab:   tab,
	}
	e.rates = make([]int, e.k)
	for i := 0; i < e.n; i++ {
		id := tab.ID(i)
		if !net.HasVertex(id) {
			return nil, fmt.Errorf("%w: %q", ErrTableMismatch, id)
		}
		if i < e.k {
			if e.rates[i] = net.Rate(id); e.rates[i] <= 0 {
				return nil, fmt.Errorf("%w: %q has no rate", ErrTableMismatch, id)
			}
		}
	}
	e.w = make([]int, e.n*e.n)
	for u := 0; u < e.n; u++ {
		for v := 0; v < e.n; v++ {
			e.w[u*e.n+v] = tab.At(u, v)
		}
	}
	e.buildOrder()

	return e, nil
}

func validateOptions(o Options) error {
	if o.Workers < 0 {
		return fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, o.Workers)
	}
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: TimeLimit cannot be negative (%s)", ErrOptionViolation, o.TimeLimit)
	}
	if o.Bound != RateBound && o.Bound != NoBound {
		return fmt.Errorf("%w: unknown bound %d", ErrOptionViolation, o.Bound)
	}
	return nil
}

// at is a fast accessor into the dense distance buffer.
func (e *Engine) at(u, v int) int { return e.w[u*e.n+v] }

// buildOrder sorts, for each key valve u, the rate-bearing valves by
// distance from u. A rate-bearing u keeps itself in its own row (distance
// 0): standing on an unopened valve, opening it costs one turn.
func (e *Engine) buildOrder() {
	e.order = make([][]int, e.n)
	for u := 0; u < e.n; u++ {
		row := make([]int, e.k)
		for v := range row {
			row[v] = v
		}
		sort.SliceStable(row, func(i, j int) bool {
			return e.at(u, row[i]) < e.at(u, row[j])
		})
		e.order[u] = row
	}
}

// SetOf returns the activated set holding the given valves.
func (e *Engine) SetOf(ids ...string) (Set, error) {
	var s Set
	for _, id := range ids {
		i, ok := e.tab.Index(id)
		if !ok || i >= e.k {
			return 0, fmt.Errorf("%w: %q", ErrNotRateBearing, id)
		}
		s = s.With(i)
	}
	return s, nil
}

// Members lists the valve IDs in s, in index order.
func (e *Engine) Members(s Set) []string {
	out := make([]string, 0, s.Len())
	for i := 0; i < e.k; i++ {
		if s.Has(i) {
			out = append(out, e.tab.ID(i))
		}
	}
	return out
}

// StartID returns the valve every root search begins on.
func (e *Engine) StartID() string { return e.tab.StartID() }

// run is the per-goroutine state of one search: node counter, stop flag and
// a pointer to the incumbent shared by every goroutine of the same Solve.
type run struct {
	e        *Engine
	useBound bool

	ctx     context.Context
	nodes   int64
	stopped bool

	best *atomic.Int64
}

func (e *Engine) newRun(ctx context.Context, best *atomic.Int64) *run {
	if best == nil {
		best = new(atomic.Int64)
	}
	return &run{e: e, useBound: e.opts.Bound == RateBound, ctx: ctx, best: best}
}

// tick counts a node and performs a rare cancellation test (every 4096 nodes).
func (r *run) tick() {
	r.nodes++
	if r.ctx == nil || r.stopped || r.nodes&4095 != 0 {
		return
	}
	if r.ctx.Err() != nil {
		r.stopped = true
	}
}

// offer raises the shared incumbent to score if it is higher.
func (r *run) offer(score int) {
	s := int64(score)
	for {
		cur := r.best.Load()
		if s <= cur || r.best.CompareAndSwap(cur, s) {
			return
		}
	}
}

// beaten reports whether upper cannot improve on the incumbent.
func (r *run) beaten(upper int) bool {
	return r.useBound && int64(upper) <= r.best.Load()
}

// bonus is the optimistic extra flow of every unopened valve if each could
// be reached by whichever agent gets there first, ignoring all conflicts.
// Each agent is a (position, turns until free) pair; a retired agent passes
// free >= turns and contributes nothing.
func (r *run) bonus(turns int, opened Set, pos [2]int, free [2]int, agents int) int {
	e := r.e
	extra := 0
	for v := 0; v < e.k; v++ {
		if opened.Has(v) {
			continue
		}
		earliest := turns
		for a := 0; a < agents; a++ {
			if free[a] >= turns {
				continue
			}
			if t := free[a] + e.at(pos[a], v) + 1; t < earliest {
				earliest = t
			}
		}
		if earliest < turns {
			extra += e.rates[v] * (turns - earliest)
		}
	}
	return extra
}
