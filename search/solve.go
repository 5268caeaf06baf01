package search

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Solve runs the single-agent search from the start valve with an empty
// activated set, zero flow and the given budget.
func (e *Engine) Solve(ctx context.Context, budget int) (Result, error) {
	return e.solve(ctx, budget, 1)
}

// SolveTwo runs the dual-agent search with both agents free on the start valve.
func (e *Engine) SolveTwo(ctx context.Context, budget int) (Result, error) {
	return e.solve(ctx, budget, 2)
}

// branch is one root subtree; it runs on its own run and returns its best score.
type branch func(r *run) int

// solve is the shared entry point.
//
// Implementation:
//   - Stage 1: Guard the budget and arm the optional TimeLimit.
//   - Stage 2: Workers <= 1 recurses from the root on one goroutine.
//     Workers > 1 splits the root into its first decisions and runs them on
//     an errgroup limited to Workers goroutines. Every branch owns its
//     activated set by value; the incumbent is shared atomically so pruning
//     in one branch benefits from scores found in another.
//   - Stage 3: Report ErrTimeLimit or the context error if any run stopped
//     early, together with the best score found so far.
func (e *Engine) solve(ctx context.Context, budget, agents int) (Result, error) {
	if budget < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNegativeBudget, budget)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if e.opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.TimeLimit)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		return Result{Agents: agents, Budget: budget}, e.stopErr(err)
	}

	began := time.Now()
	best := new(atomic.Int64)
	var (
		nodes   atomic.Int64
		stopped atomic.Bool
		score   int
	)
	finish := func(r *run) {
		nodes.Add(r.nodes)
		if r.stopped {
			stopped.Store(true)
		}
	}

	if e.opts.Workers <= 1 {
		r := e.newRun(ctx, best)
		if agents == 1 {
			score = r.single(e.start, budget, 0, 0, 0)
		} else {
			score = r.dual(budget, e.rootJourneys(), 0, 0, 0)
		}
		finish(r)
	} else {
		branches := e.rootBranches(budget, agents)
		scores := make([]int, len(branches))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.opts.Workers)
		for i, br := range branches {
			i, br := i, br
			g.Go(func() error {
				r := e.newRun(gctx, best)
				scores[i] = br(r)
				finish(r)
				return nil
			})
		}
		_ = g.Wait() // branches never fail; cancellation is read from ctx below
		for _, s := range scores {
			if s > score {
				score = s
			}
		}
	}

	if inc := int(best.Load()); inc > score {
		score = inc
	}
	res := Result{
		Score:   score,
		Agents:  agents,
		Budget:  budget,
		Nodes:   nodes.Load(),
		Elapsed: time.Since(began),
	}
	if stopped.Load() {
		return res, e.stopErr(ctx.Err())
	}

	return res, nil
}

// stopErr maps an expired TimeLimit to ErrTimeLimit and passes other
// context errors through.
func (e *Engine) stopErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) && e.opts.TimeLimit > 0 {
		return fmt.Errorf("%w after %s: %w", ErrTimeLimit, e.opts.TimeLimit, err)
	}
	return err
}

func (e *Engine) rootJourneys() [2]journey {
	return [2]journey{{at: e.start}, {at: e.start}}
}

// rootBranches lists the first decisions of a search: the first valve for
// one agent, or agent 0's first valve (or retirement) for two.
func (e *Engine) rootBranches(budget, agents int) []branch {
	var out []branch
	for _, v := range e.order[e.start] {
		v := v
		cost := e.at(e.start, v) + 1
		if cost >= budget {
			break
		}
		if agents == 1 {
			out = append(out, func(r *run) int {
				return r.single(v, budget-cost, Set(0).With(v), e.rates[v], 0)
			})
			continue
		}
		out = append(out, func(r *run) int {
			js := e.rootJourneys()
			js[0] = journey{at: v, busy: cost, pending: e.rates[v]}
			return r.advance(budget, js, 0, 0, Set(0).With(v))
		})
	}
	if agents == 2 && budget > 1 {
		out = append(out, func(r *run) int {
			js := e.rootJourneys()
			js[0].busy = budget
			return r.advance(budget, js, 0, 0, 0)
		})
	}
	return out
}
