package search_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valvenet/distance"
	"github.com/katalvlaran/valvenet/network"
	"github.com/katalvlaran/valvenet/search"
)

// referenceValves is the ten-valve sample network with six rate-bearing valves.
func referenceValves() []network.Valve {
	return []network.Valve{
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
}

// mkEngine builds network, table and engine in one go.
func mkEngine(t testing.TB, valves []network.Valve, start string, opts search.Options) *search.Engine {
	t.Helper()
	net, err := network.New(valves)
	require.NoError(t, err)
	tab, err := distance.Build(net, start)
	require.NoError(t, err)
	eng, err := search.NewEngine(net, tab, opts)
	require.NoError(t, err)
	return eng
}

// chain builds AA – X1 – … – X(d-1) – VV where only VV has a rate, so VV
// sits exactly d hops from AA.
func chain(d, rate int) []network.Valve {
	ids := make([]string, d+1)
	ids[0] = "AA"
	for i := 1; i < d; i++ {
		ids[i] = fmt.Sprintf("X%d", i)
	}
	ids[d] = "VV"

	valves := make([]network.Valve, d+1)
	for i, id := range ids {
		valves[i] = network.Valve{ID: id}
		if i > 0 {
			valves[i].Tunnels = append(valves[i].Tunnels, ids[i-1])
		}
		if i < d {
			valves[i].Tunnels = append(valves[i].Tunnels, ids[i+1])
		}
	}
	valves[d].Rate = rate
	return valves
}

// randomValves builds a connected, symmetric network of n valves where
// about half carry a rate. A spanning path guarantees connectivity.
func randomValves(seed int64, n int) []network.Valve {
	rng := rand.New(rand.NewSource(seed))
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("V%02d", i)
	}
	adj := make([]map[int]bool, n)
	for i := range adj {
		adj[i] = map[int]bool{}
	}
	link := func(a, b int) {
		if a != b {
			adj[a][b] = true
			adj[b][a] = true
		}
	}
	for i := 1; i < n; i++ {
		link(i-1, i)
	}
	for i := 0; i < n; i++ {
		link(i, rng.Intn(n))
	}

	valves := make([]network.Valve, n)
	for i := range valves {
		valves[i] = network.Valve{ID: ids[i]}
		if i > 0 && rng.Intn(2) == 0 {
			valves[i].Rate = 1 + rng.Intn(25)
		}
		for j := 0; j < n; j++ {
			if adj[i][j] {
				valves[i].Tunnels = append(valves[i].Tunnels, ids[j])
			}
		}
	}
	return valves
}
