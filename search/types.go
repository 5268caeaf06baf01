package search

import (
	"errors"
	"fmt"
	"math/bits"
	"time"
)

// Sentinel errors. The search contracts themselves are total; these only
// guard engine construction and the Solve entry points.
var (
	// ErrNilInput is returned when NewEngine gets a nil network or table.
	ErrNilInput = errors.New("search: nil network or distance table")

	// ErrTableMismatch is returned when the table names valves the network lacks.
	ErrTableMismatch = errors.New("search: distance table does not match network")

	// ErrOptionViolation is returned for out-of-range Options.
	ErrOptionViolation = errors.New("search: invalid option")

	// ErrNegativeBudget is returned by Solve/SolveTwo for budgets below zero.
	ErrNegativeBudget = errors.New("search: negative turn budget")

	// ErrNotRateBearing is returned by SetOf for valves that cannot be opened.
	ErrNotRateBearing = errors.New("search: valve has no rate")

	// ErrTimeLimit is returned when Options.TimeLimit expires mid-search.
	ErrTimeLimit = errors.New("search: time limit exceeded")
)

// BoundAlgo selects the pruning policy on top of the budget-feasibility checks.
type BoundAlgo int

const (
	// RateBound prunes a branch when its idle projection plus an optimistic
	// bonus per unopened valve cannot beat the best score seen so far.
	RateBound BoundAlgo = iota
	// NoBound explores every feasible branch (testing and benchmarking).
	NoBound
)

// String returns the config spelling of the bound.
func (b BoundAlgo) String() string {
	switch b {
	case RateBound:
		return "rate"
	case NoBound:
		return "none"
	default:
		return "unknown"
	}
}

// ParseBound maps a config spelling back to a BoundAlgo.
func ParseBound(s string) (BoundAlgo, error) {
	switch s {
	case "", "rate":
		return RateBound, nil
	case "none":
		return NoBound, nil
	default:
		return 0, fmt.Errorf("%w: unknown bound %q", ErrOptionViolation, s)
	}
}

// Options configures an Engine.
type Options struct {
	// Bound selects the pruning policy. The score never depends on it.
	Bound BoundAlgo

	// Workers > 1 explores the root branches of Solve/SolveTwo concurrently.
	// 0 and 1 both mean a single goroutine.
	Workers int

	// TimeLimit, if > 0, aborts Solve/SolveTwo with ErrTimeLimit.
	TimeLimit time.Duration
}

// DefaultOptions returns RateBound, one worker and no time limit.
func DefaultOptions() Options {
	return Options{Bound: RateBound, Workers: 1}
}

// Set is an activated-valve set: bit i stands for the rate-bearing valve at
// distance-table index i. It is a plain value, so every branch of the search
// owns its own copy and nothing has to be undone on backtrack.
type Set uint64

// Has reports whether index i is in the set.
func (s Set) Has(i int) bool { return s&(1<<uint(i)) != 0 }

// With returns a copy of s that also contains i.
func (s Set) With(i int) Set { return s | 1<<uint(i) }

// Len returns the number of activated valves.
func (s Set) Len() int { return bits.OnesCount64(uint64(s)) }

// Journey is one agent of the dual search.
//
// Node is where the agent stands, or where it is heading while Busy > 0.
// Busy counts the turns until the agent can decide again; Pending is the
// rate that joins the shared flow when Busy reaches zero. An agent with
// Busy >= the remaining turns has retired for the rest of the run.
type Journey struct {
	Node    string
	Busy    int
	Pending int
}

// Result is the outcome of Solve or SolveTwo.
type Result struct {
	// Score is the maximum total flow released when the budget runs out.
	// On ErrTimeLimit or cancellation it is the best score found so far.
	Score int

	Agents int
	Budget int

	// Nodes counts search states expanded, across all workers.
	Nodes int64

	Elapsed time.Duration
}
