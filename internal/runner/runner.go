// Package runner executes configured scenarios against a loaded instance,
// logging, recording metrics and persisting each run.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/katalvlaran/valvenet/internal/config"
	"github.com/katalvlaran/valvenet/internal/metrics"
	"github.com/katalvlaran/valvenet/internal/store"
	"github.com/katalvlaran/valvenet/loader"
	"github.com/katalvlaran/valvenet/search"
)

// ErrAgents is returned for a scenario with an unsupported agent count.
var ErrAgents = errors.New("runner: agents must be 1 or 2")

// Store is the persistence the runner needs.
type Store interface {
	Save(ctx context.Context, run store.Run) (store.Run, error)
	Get(ctx context.Context, id string) (store.Run, error)
	List(ctx context.Context, limit int) ([]store.Run, error)
}

// ErrNoStore is returned by Lookup when history is disabled.
var ErrNoStore = errors.New("runner: run history disabled")

// Runner is safe for concurrent use once configured.
type Runner struct {
	Logger  *slog.Logger
	Store   Store            // nil disables history
	Metrics *metrics.Metrics // nil disables metrics
	Options search.Options
}

// New returns a Runner with the given options and a default logger.
func New(opts search.Options) *Runner {
	return &Runner{Logger: slog.Default(), Options: opts}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Run solves one scenario. A run stopped by cancellation or the time limit
// is still recorded (Complete false) and its error is returned with it.
func (r *Runner) Run(ctx context.Context, inst *loader.Instance, sc config.Scenario) (store.Run, error) {
	log := r.logger().With("scenario", sc.Name, "agents", sc.Agents, "budget", sc.Budget)
	agents := strconv.Itoa(sc.Agents)

	if sc.Agents != 1 && sc.Agents != 2 {
		return store.Run{}, fmt.Errorf("%w: got %d", ErrAgents, sc.Agents)
	}
	eng, err := search.NewEngine(inst.Net, inst.Dist, r.Options)
	if err != nil {
		r.Metrics.Observe(sc.Name, agents, "error", 0, 0, 0)
		log.Error("engine setup failed", "err", err)
		return store.Run{}, fmt.Errorf("runner: %w", err)
	}

	log.Debug("solve started", "start", inst.Start, "valves", inst.Net.Len(),
		"rate_bearing", inst.Dist.RateBearing(), "bound", r.Options.Bound.String(), "workers", r.Options.Workers)

	var res search.Result
	if sc.Agents == 1 {
		res, err = eng.Solve(ctx, sc.Budget)
	} else {
		res, err = eng.SolveTwo(ctx, sc.Budget)
	}

	status := "ok"
	switch {
	case err == nil:
	case Stopped(err):
		status = "stopped"
	default:
		r.Metrics.Observe(sc.Name, agents, "error", 0, 0, 0)
		log.Error("solve failed", "err", err)
		return store.Run{}, fmt.Errorf("runner: %w", err)
	}
	r.Metrics.Observe(sc.Name, agents, status, res.Score, res.Nodes, res.Elapsed)

	run := store.Run{
		Scenario: sc.Name,
		Digest:   inst.Digest,
		Start:    inst.Start,
		Agents:   res.Agents,
		Budget:   res.Budget,
		Score:    res.Score,
		Nodes:    res.Nodes,
		Elapsed:  res.Elapsed,
		Complete: err == nil,
	}
	if r.Store != nil {
		saved, serr := r.Store.Save(context.WithoutCancel(ctx), run)
		if serr != nil {
			log.Error("saving run failed", "err", serr)
			return run, errors.Join(err, fmt.Errorf("runner: %w", serr))
		}
		run = saved
	}

	attrs := []any{"score", run.Score, "nodes", run.Nodes, "elapsed", run.Elapsed, "run_id", run.ID}
	if err != nil {
		log.Warn("solve stopped early", append(attrs, "err", err)...)
		return run, err
	}
	log.Info("solve finished", attrs...)
	return run, nil
}

// RunAll solves scenarios in order and stops at the first failure. A run
// that stopped early is included in the result.
func (r *Runner) RunAll(ctx context.Context, inst *loader.Instance, scenarios []config.Scenario) ([]store.Run, error) {
	runs := make([]store.Run, 0, len(scenarios))
	for _, sc := range scenarios {
		run, err := r.Run(ctx, inst, sc)
		if err != nil {
			if Stopped(err) {
				runs = append(runs, run)
			}
			return runs, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// History lists stored runs, newest first.
func (r *Runner) History(ctx context.Context, limit int) ([]store.Run, error) {
	if r.Store == nil {
		return nil, nil
	}
	return r.Store.List(ctx, limit)
}

// Lookup loads one stored run.
func (r *Runner) Lookup(ctx context.Context, id string) (store.Run, error) {
	if r.Store == nil {
		return store.Run{}, ErrNoStore
	}
	return r.Store.Get(ctx, id)
}

// Stopped reports whether err means the search ended early by
// cancellation or its time limit.
func Stopped(err error) bool {
	return errors.Is(err, search.ErrTimeLimit) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
