package search

// journey is the index form of Journey used inside the recursion.
type journey struct {
	at      int
	busy    int
	pending int
}

// BestScoreTwo returns the maximum total flow two agents can release when
// they share one activated set, one clock and one flow rate.
//
// An agent that commits to a valve is locked for distance+1 turns while the
// other keeps deciding. Each step hands the decision to the agent with the
// smaller lock (agent a on ties), and the clock then advances by the smaller
// of the two locks and the turns left. When a lock reaches zero its pending
// rate joins the shared flow. A free agent may also retire, which leaves the
// rest of the run to its partner.
//
// The idle projection counts rates still in flight, so the result is never
// below total + rate*turns + Σ pending*(turns-busy). A Journey whose Node is
// not a key valve is treated as retired. BestScoreTwo ignores Workers and
// TimeLimit.
func (e *Engine) BestScoreTwo(turns int, a, b Journey, rate, total int, opened Set) int {
	if turns <= 0 {
		return total
	}
	js := [2]journey{e.journey(a, turns), e.journey(b, turns)}
	r := e.newRun(nil, nil)

	return r.dual(turns, js, rate, total, opened&e.mask())
}

func (e *Engine) journey(j Journey, turns int) journey {
	i, ok := e.tab.Index(j.Node)
	if !ok {
		return journey{at: e.start, busy: turns}
	}
	busy := j.Busy
	if busy < 0 {
		busy = 0
	}
	return journey{at: i, busy: busy, pending: j.Pending}
}

// dual is the two-agent recursion. On entry at most one agent is ready
// (busy == 0) unless both are, in which case agent 0 decides first.
func (r *run) dual(turns int, js [2]journey, rate, total int, opened Set) int {
	r.tick()

	// Arrivals: a finished journey adds its valve to the shared flow.
	for i := range js {
		if js[i].busy == 0 && js[i].pending > 0 {
			rate += js[i].pending
			js[i].pending = 0
		}
	}

	best := total + rate*turns
	for i := range js {
		if js[i].pending > 0 && js[i].busy < turns {
			best += js[i].pending * (turns - js[i].busy)
		}
	}
	r.offer(best)
	if r.stopped || turns <= 1 {
		return best
	}

	me := 0
	if js[1].busy < js[0].busy {
		me = 1
	}
	other := 1 - me
	switch {
	case js[me].busy >= turns:
		return best // both retired
	case js[me].busy > 0:
		// Both in transit; let the clock run to the next arrival.
		if s := r.advance(turns, js, rate, total, opened); s > best {
			best = s
		}
		return best
	}

	if r.useBound {
		pos := [2]int{js[0].at, js[1].at}
		free := [2]int{js[0].busy, js[1].busy}
		if r.beaten(best + r.bonus(turns, opened, pos, free, 2)) {
			return best
		}
	}

	e := r.e
	from := js[me].at
	for _, v := range e.order[from] {
		if opened.Has(v) {
			continue
		}
		cost := e.at(from, v) + 1
		if cost >= turns {
			break
		}
		next := js
		next[me] = journey{at: v, busy: cost, pending: e.rates[v]}
		if s := r.advance(turns, next, rate, total, opened.With(v)); s > best {
			best = s
		}
	}

	// Retiring only matters while the partner can still act.
	if js[other].busy < turns {
		next := js
		next[me].busy = turns
		if s := r.advance(turns, next, rate, total, opened); s > best {
			best = s
		}
	}

	return best
}

// advance moves the shared clock to the next moment some agent is free,
// accruing flow for the elapsed turns.
func (r *run) advance(turns int, js [2]journey, rate, total int, opened Set) int {
	elapsed := js[0].busy
	if js[1].busy < elapsed {
		elapsed = js[1].busy
	}
	if turns < elapsed {
		elapsed = turns
	}
	js[0].busy -= elapsed
	js[1].busy -= elapsed

	return r.dual(turns-elapsed, js, rate, total+rate*elapsed, opened)
}
