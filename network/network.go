// File: network.go
// Role: Valve table construction and read-only queries.
//
// Determinism:
//   - IDs() and RateBearing() return IDs sorted lexicographically ascending.
//   - NeighborIDs() preserves tunnel declaration order (duplicates dropped).
//
// Concurrency:
//   - No locks: a Network is never mutated after New returns.
package network

import (
	"fmt"
	"sort"
)

// New validates valves and builds the immutable table.
//
// Implementation:
//   - Stage 1: Register every valve, rejecting empty IDs, duplicates and
//     negative rates. Tunnel slices are copied and de-duplicated.
//   - Stage 2: Resolve every tunnel target (ErrUnknownTunnel, ErrSelfTunnel).
//   - Stage 3: Optionally require mirrored tunnels (ErrAsymmetricTunnel).
//   - Stage 4: Build the sorted enumerations.
//
// Complexity:
//   - Time O(V log V + E), Space O(V + E).
func New(valves []Valve, opts ...Option) (*Network, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	n := &Network{valves: make(map[string]*Valve, len(valves))}

	// Stage 1: registration.
	for i := range valves {
		v := valves[i]
		if v.ID == "" {
			return nil, fmt.Errorf("%w (declaration #%d)", ErrEmptyValveID, i)
		}
		if _, dup := n.valves[v.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateValve, v.ID)
		}
		if v.Rate < 0 {
			return nil, fmt.Errorf("%w: %q has rate %d", ErrNegativeRate, v.ID, v.Rate)
		}
		n.valves[v.ID] = &Valve{ID: v.ID, Rate: v.Rate, Tunnels: dedupe(v.Tunnels)}
	}

	// Stage 2: tunnel targets.
	for _, v := range n.valves {
		for _, to := range v.Tunnels {
			if to == v.ID {
				return nil, fmt.Errorf("%w: %q", ErrSelfTunnel, v.ID)
			}
			if _, ok := n.valves[to]; !ok {
				return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownTunnel, v.ID, to)
			}
		}
	}

	// Stage 3: symmetry.
	if cfg.symmetric {
		for _, v := range n.valves {
			for _, to := range v.Tunnels {
				if !contains(n.valves[to].Tunnels, v.ID) {
					return nil, fmt.Errorf("%w: %q -> %q", ErrAsymmetricTunnel, v.ID, to)
				}
			}
		}
	}

	// Stage 4: enumerations.
	n.ids = make([]string, 0, len(n.valves))
	for id, v := range n.valves {
		n.ids = append(n.ids, id)
		if v.Rate > 0 {
			n.rateBearing = append(n.rateBearing, id)
			n.totalRate += v.Rate
		}
	}
	sort.Strings(n.ids)
	sort.Strings(n.rateBearing)

	return n, nil
}

// HasVertex reports whether id is a declared valve.
func (n *Network) HasVertex(id string) bool {
	_, ok := n.valves[id]
	return ok
}

// NeighborIDs returns the tunnel targets of id in declaration order.
// The returned slice is a copy; callers may modify it.
func (n *Network) NeighborIDs(id string) ([]string, error) {
	v, ok := n.valves[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrValveNotFound, id)
	}
	out := make([]string, len(v.Tunnels))
	copy(out, v.Tunnels)

	return out, nil
}

// Valve returns a copy of the valve with the given ID.
func (n *Network) Valve(id string) (Valve, error) {
	v, ok := n.valves[id]
	if !ok {
		return Valve{}, fmt.Errorf("%w: %q", ErrValveNotFound, id)
	}
	tunnels := make([]string, len(v.Tunnels))
	copy(tunnels, v.Tunnels)

	return Valve{ID: v.ID, Rate: v.Rate, Tunnels: tunnels}, nil
}

// Rate returns the flow rate of id, or 0 for unknown valves.
func (n *Network) Rate(id string) int {
	if v, ok := n.valves[id]; ok {
		return v.Rate
	}
	return 0
}

// IDs returns every valve ID, sorted.
func (n *Network) IDs() []string {
	out := make([]string, len(n.ids))
	copy(out, n.ids)
	return out
}

// RateBearing returns the IDs of valves with a positive rate, sorted.
// Zero-rate valves are never worth opening and never appear here.
func (n *Network) RateBearing() []string {
	out := make([]string, len(n.rateBearing))
	copy(out, n.rateBearing)
	return out
}

// Len returns the number of valves.
func (n *Network) Len() int { return len(n.ids) }

// TotalRate returns the sum of all valve rates.
func (n *Network) TotalRate() int { return n.totalRate }

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
