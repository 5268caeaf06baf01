package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valvenet/internal/metrics"
	"github.com/katalvlaran/valvenet/internal/runner"
	"github.com/katalvlaran/valvenet/internal/server"
	"github.com/katalvlaran/valvenet/internal/store"
	"github.com/katalvlaran/valvenet/network"
	"github.com/katalvlaran/valvenet/search"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var referenceValves = []network.Valve{
	{ID: "AA", Rate: 0, Tunnels: []string{"DD", "II", "BB"}},
	{ID: "BB", Rate: 13, Tunnels: []string{"CC", "AA"}},
	{ID: "CC", Rate: 2, Tunnels: []string{"DD", "BB"}},
	{ID: "DD", Rate: 20, Tunnels: []string{"CC", "AA", "EE"}},
	{ID: "EE", Rate: 3, Tunnels: []string{"FF", "DD"}},
	{ID: "FF", Rate: 0, Tunnels: []string{"EE", "GG"}},
	{ID: "GG", Rate: 0, Tunnels: []string{"FF", "HH"}},
	{ID: "HH", Rate: 22, Tunnels: []string{"GG"}},
	{ID: "II", Rate: 0, Tunnels: []string{"AA", "JJ"}},
	{ID: "JJ", Rate: 21, Tunnels: []string{"II"}},
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := &runner.Runner{Logger: logger, Store: s, Metrics: metrics.New(), Options: search.DefaultOptions()}
	return server.New(r, logger)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newServer(t), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSolve_ThenListAndGet(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodPost, "/v1/solve", server.SolveRequest{
		Name: "pair", Agents: 2, Budget: 26, Valves: referenceValves,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp server.SolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1707, resp.Run.Score)
	assert.Equal(t, "AA", resp.Run.Start)
	assert.True(t, resp.Run.Complete)
	assert.Empty(t, resp.Error)

	w = do(t, h, http.MethodGet, "/v1/runs?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Runs []store.Run `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Runs, 1)
	assert.Equal(t, resp.Run.ID, list.Runs[0].ID)

	w = do(t, h, http.MethodGet, "/v1/runs/"+resp.Run.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got store.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "pair", got.Scenario)

	w = do(t, h, http.MethodGet, "/v1/runs/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `valvenet_solve_score{scenario="pair"} 1707`)
}

func TestSolve_BadRequests(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodPost, "/v1/solve", map[string]any{"agents": 3, "budget": 5, "valves": referenceValves})
	assert.Equal(t, http.StatusBadRequest, w.Code, "agent count is bound-checked")

	w = do(t, h, http.MethodPost, "/v1/solve", map[string]any{"agents": 1, "budget": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code, "valves are required")

	w = do(t, h, http.MethodPost, "/v1/solve", server.SolveRequest{
		Agents: 1, Budget: 5,
		Valves: []network.Valve{{ID: "AA", Tunnels: []string{"ZZ"}}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, h, http.MethodPost, "/v1/solve", server.SolveRequest{
		Agents: 1, Budget: 5, Start: "QQ", Valves: referenceValves,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "unknown start")

	w = do(t, h, http.MethodGet, "/v1/runs?limit=-2", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
