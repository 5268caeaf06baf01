package network_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/valvenet/network"
)

// TestNew_Errors verifies that malformed valve declarations are rejected.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name   string
		valves []network.Valve
		opts   []network.Option
		want   error
	}{
		{"empty id", []network.Valve{{ID: ""}}, nil, network.ErrEmptyValveID},
		{"duplicate", []network.Valve{{ID: "AA"}, {ID: "AA"}}, nil, network.ErrDuplicateValve},
		{"negative rate", []network.Valve{{ID: "AA", Rate: -1}}, nil, network.ErrNegativeRate},
		{"unknown tunnel", []network.Valve{{ID: "AA", Tunnels: []string{"ZZ"}}}, nil, network.ErrUnknownTunnel},
		{"self tunnel", []network.Valve{{ID: "AA", Tunnels: []string{"AA"}}}, nil, network.ErrSelfTunnel},
		{
			"one-way tunnel",
			[]network.Valve{{ID: "AA", Tunnels: []string{"BB"}}, {ID: "BB"}},
			[]network.Option{network.WithSymmetricTunnels()},
			network.ErrAsymmetricTunnel,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := network.New(tc.valves, tc.opts...)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestNew_OneWayAllowedByDefault checks that symmetry is opt-in.
func TestNew_OneWayAllowedByDefault(t *testing.T) {
	n, err := network.New([]network.Valve{{ID: "AA", Tunnels: []string{"BB"}}, {ID: "BB"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n.Len())
}

// TestNetwork_Queries covers enumeration, lookups and copy semantics.
func TestNetwork_Queries(t *testing.T) {
	valves := []network.Valve{
		{ID: "CC", Rate: 2, Tunnels: []string{"BB"}},
		{ID: "AA", Rate: 0, Tunnels: []string{"BB", "BB"}},
		{ID: "BB", Rate: 13, Tunnels: []string{"CC", "AA"}},
	}
	n, err := network.New(valves, network.WithSymmetricTunnels())
	require.NoError(t, err)

	assert.Equal(t, []string{"AA", "BB", "CC"}, n.IDs())
	assert.Equal(t, []string{"BB", "CC"}, n.RateBearing(), "zero-rate valves are excluded")
	assert.Equal(t, 15, n.TotalRate())
	assert.Equal(t, 13, n.Rate("BB"))
	assert.Equal(t, 0, n.Rate("nope"))
	assert.True(t, n.HasVertex("AA"))
	assert.False(t, n.HasVertex("DD"))

	nbrs, err := n.NeighborIDs("AA")
	require.NoError(t, err)
	assert.Equal(t, []string{"BB"}, nbrs, "duplicate tunnels collapse")

	nbrs[0] = "XX"
	again, _ := n.NeighborIDs("AA")
	assert.Equal(t, []string{"BB"}, again, "NeighborIDs must return a copy")

	v, err := n.Valve("BB")
	require.NoError(t, err)
	assert.Equal(t, network.Valve{ID: "BB", Rate: 13, Tunnels: []string{"CC", "AA"}}, v)

	_, err = n.Valve("ZZ")
	require.ErrorIs(t, err, network.ErrValveNotFound)
	_, err = n.NeighborIDs("ZZ")
	require.ErrorIs(t, err, network.ErrValveNotFound)
}

// TestNew_DoesNotAliasInput ensures later edits to the input do not leak in.
func TestNew_DoesNotAliasInput(t *testing.T) {
	valves := []network.Valve{
		{ID: "AA", Tunnels: []string{"BB"}},
		{ID: "BB", Rate: 5, Tunnels: []string{"AA"}},
	}
	n, err := network.New(valves)
	require.NoError(t, err)

	valves[0].Tunnels[0] = "CC"
	valves[1].Rate = 99

	nbrs, _ := n.NeighborIDs("AA")
	assert.Equal(t, []string{"BB"}, nbrs)
	assert.Equal(t, 5, n.Rate("BB"))
}
