package search

// BestScore returns the maximum total flow one agent can release before the
// budget runs out, starting on valve at with turns remaining, the valves in
// opened already open, the current flow rate and the flow released so far.
//
// Doing nothing is always allowed, so the result is never below the idle
// projection total + rate*turns. From there every unopened rate-bearing
// valve v with cost = distance(at, v) + 1 < turns is tried: the agent
// walks there and opens it, the flow accrues for cost turns at the old rate,
// and the search continues from v with rate + rate(v).
//
// Bits of opened beyond the rate-bearing valves are ignored. An at that is
// not a key valve of the table cannot reach anything and scores the idle
// projection. BestScore ignores Workers and TimeLimit.
func (e *Engine) BestScore(turns int, at string, opened Set, rate, total int) int {
	if turns <= 0 {
		return total
	}
	u, ok := e.tab.Index(at)
	if !ok {
		return total + rate*turns
	}
	r := e.newRun(nil, nil)

	return r.single(u, turns, opened&e.mask(), rate, total)
}

// mask keeps only the bits of rate-bearing valves.
func (e *Engine) mask() Set {
	if e.k >= 64 {
		return ^Set(0)
	}
	return Set(1)<<uint(e.k) - 1
}

// single is the depth-first branch-and-bound recursion for one agent.
// The set travels by value, so there is nothing to restore on return.
func (r *run) single(at, turns int, opened Set, rate, total int) int {
	r.tick()

	best := total + rate*turns
	r.offer(best)
	// Every move costs at least one turn and must leave one turn of flow.
	if r.stopped || turns <= 1 {
		return best
	}
	if r.useBound && r.beaten(best+r.bonus(turns, opened, [2]int{at}, [2]int{}, 1)) {
		return best
	}

	e := r.e
	for _, v := range e.order[at] {
		if opened.Has(v) {
			continue
		}
		cost := e.at(at, v) + 1
		if cost >= turns {
			break // rows are sorted by distance
		}
		if s := r.single(v, turns-cost, opened.With(v), rate+e.rates[v], total+rate*cost); s > best {
			best = s
		}
	}

	return best
}
