// Package search computes the maximum flow that one or two agents can
// release from a valve network within a fixed turn budget.
//
// Model
//
//	Walking one tunnel costs a turn and opening a valve costs a turn. Once a
//	valve is open its rate is added to the running flow for every remaining
//	turn. The score is the flow released by the time the budget reaches zero.
//
// Engines
//
//   - BestScore: depth-first branch-and-bound for one agent. The idle
//     projection total + rate*turns seeds each call; every unopened
//     rate-bearing valve reachable with distance+1 < turns is a branch.
//   - BestScoreTwo: two agents share the activated set, the clock and the
//     flow rate. The agent with the smaller lock decides (agent a on ties);
//     the clock then jumps to the next moment one of them is free.
//   - Solve / SolveTwo: root calls from the start valve with an empty set,
//     optional parallel root branches (Workers), cancellation and TimeLimit.
//
// Activated sets are 64-bit masks passed by value, so branches never share
// mutable state and root branches can run on separate goroutines while the
// Engine and its distance buffer are read concurrently without locks.
//
// Pruning
//
//	Budget feasibility (cost < turns) always applies. RateBound also
//	prunes a branch when its projection plus, for every unopened valve,
//	rate × (turns − earliest possible opening turn) cannot beat the best
//	score seen so far. The bound is admissible, so scores are identical
//	with NoBound.
//
// Complexity
//
//	Exponential in the number of rate-bearing valves; per node O(K) for
//	branching plus O(K) for the bound.
//
// Usage
//
//	tab, err := distance.Build(net, "AA")
//	eng, err := search.NewEngine(net, tab, search.DefaultOptions())
//	res, err := eng.Solve(ctx, 30)    // one agent
//	res, err = eng.SolveTwo(ctx, 26)  // two agents
package search
