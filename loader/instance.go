package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/valvenet/distance"
	"github.com/katalvlaran/valvenet/network"
)

// DefaultStart is the conventional start valve.
const DefaultStart = "AA"

// ErrNoValves is returned by Build for empty input.
var ErrNoValves = errors.New("loader: no valves")

// Instance is one validated problem: the valve table, its distance oracle
// and a digest identifying the input regardless of declaration order.
type Instance struct {
	Net    *network.Network
	Dist   *distance.Table
	Start  string
	Digest string
}

// Build validates valves, builds the network and precomputes distances
// from start (DefaultStart if empty). Disconnected input fails here with
// distance.ErrUnreachable.
func Build(ctx context.Context, valves []network.Valve, start string) (*Instance, error) {
	if len(valves) == 0 {
		return nil, ErrNoValves
	}
	if start == "" {
		start = DefaultStart
	}
	net, err := network.New(valves)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	tab, err := distance.Build(net, start, distance.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return &Instance{Net: net, Dist: tab, Start: start, Digest: Digest(net)}, nil
}

// Digest hashes the canonical form of a network: valves sorted by ID with
// their rates and tunnel targets.
func Digest(net *network.Network) string {
	h := sha256.New()
	for _, id := range net.IDs() {
		v, _ := net.Valve(id)
		tunnels := append([]string(nil), v.Tunnels...)
		sort.Strings(tunnels)
		fmt.Fprintf(h, "%s=%s>%s\n", v.ID, strconv.Itoa(v.Rate), strings.Join(tunnels, ","))
	}
	return hex.EncodeToString(h.Sum(nil))
}
