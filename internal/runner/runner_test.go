package runner_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valvenet/internal/config"
	"github.com/katalvlaran/valvenet/internal/metrics"
	"github.com/katalvlaran/valvenet/internal/runner"
	"github.com/katalvlaran/valvenet/internal/store"
	"github.com/katalvlaran/valvenet/loader"
	"github.com/katalvlaran/valvenet/search"
)

const reference = `Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
Valve BB has flow rate=13; tunnels lead to valves CC, AA
Valve CC has flow rate=2; tunnels lead to valves DD, BB
Valve DD has flow rate=20; tunnels lead to valves CC, AA, EE
Valve EE has flow rate=3; tunnels lead to valves FF, DD
Valve FF has flow rate=0; tunnels lead to valves EE, GG
Valve GG has flow rate=0; tunnels lead to valves FF, HH
Valve HH has flow rate=22; tunnel leads to valve GG
Valve II has flow rate=0; tunnels lead to valves AA, JJ
Valve JJ has flow rate=21; tunnel leads to valve II
`

func referenceInstance(t *testing.T) *loader.Instance {
	t.Helper()
	valves, err := loader.Parse(strings.NewReader(reference))
	require.NoError(t, err)
	inst, err := loader.Build(context.Background(), valves, "AA")
	require.NoError(t, err)
	return inst
}

func newRunner(t *testing.T, buf *bytes.Buffer) (*runner.Runner, *store.SQLiteStore) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return &runner.Runner{
		Logger:  slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Store:   s,
		Metrics: metrics.New(),
		Options: search.DefaultOptions(),
	}, s
}

func TestRunAll_Reference(t *testing.T) {
	var buf bytes.Buffer
	r, _ := newRunner(t, &buf)
	inst := referenceInstance(t)

	runs, err := r.RunAll(context.Background(), inst, config.Default().Scenarios)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 1651, runs[0].Score)
	assert.Equal(t, 1707, runs[1].Score)
	for _, run := range runs {
		assert.True(t, run.Complete)
		assert.NotEmpty(t, run.ID)
		assert.Equal(t, inst.Digest, run.Digest)
	}

	history, err := r.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	assert.Contains(t, buf.String(), `"msg":"solve finished"`)
	assert.Contains(t, buf.String(), `"scenario":"pair"`)
}

func TestRun_BadAgents(t *testing.T) {
	var buf bytes.Buffer
	r, _ := newRunner(t, &buf)
	_, err := r.Run(context.Background(), referenceInstance(t), config.Scenario{Name: "x", Agents: 3, Budget: 5})
	require.ErrorIs(t, err, runner.ErrAgents)

	_, err = r.Run(context.Background(), referenceInstance(t), config.Scenario{Name: "x", Agents: 1, Budget: -1})
	require.ErrorIs(t, err, search.ErrNegativeBudget)
}

func TestRun_CancelledIsRecorded(t *testing.T) {
	var buf bytes.Buffer
	r, s := newRunner(t, &buf)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, err := r.Run(ctx, referenceInstance(t), config.Scenario{Name: "late", Agents: 2, Budget: 26})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, run.Complete)

	got, err := s.Get(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, "late", got.Scenario)
	assert.Contains(t, buf.String(), "solve stopped early")
}

func TestRun_NoStore(t *testing.T) {
	r := runner.New(search.Options{Bound: search.NoBound, Workers: 4})
	run, err := r.Run(context.Background(), referenceInstance(t), config.Scenario{Name: "solo", Agents: 1, Budget: 30})
	require.NoError(t, err)
	assert.Equal(t, 1651, run.Score)
	assert.Empty(t, run.ID)

	history, err := r.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}
