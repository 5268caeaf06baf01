// Package network defines the valve table: valves, their flow rates and the
// tunnels that connect them.
//
// A Network is built once by New and never mutated afterwards, so it can be
// shared by reference between goroutines without any locking.
//
// Errors:
//
//	ErrEmptyValveID     - valve ID is the empty string.
//	ErrDuplicateValve   - the same ID was declared twice.
//	ErrNegativeRate     - a valve declared a rate below zero.
//	ErrUnknownTunnel    - a tunnel points at an undeclared valve.
//	ErrSelfTunnel       - a tunnel points back at its own valve.
//	ErrAsymmetricTunnel - one-way tunnel when WithSymmetricTunnels is set.
//	ErrValveNotFound    - lookup of an ID that is not in the table.
package network

import "errors"

// Sentinel errors for valve table construction and lookups.
var (
	// ErrEmptyValveID indicates that a Valve has an empty ID.
	ErrEmptyValveID = errors.New("network: valve ID is empty")

	// ErrDuplicateValve indicates that two valves share one ID.
	ErrDuplicateValve = errors.New("network: duplicate valve")

	// ErrNegativeRate indicates a valve with a flow rate below zero.
	ErrNegativeRate = errors.New("network: negative flow rate")

	// ErrUnknownTunnel indicates a tunnel whose target was never declared.
	ErrUnknownTunnel = errors.New("network: tunnel to unknown valve")

	// ErrSelfTunnel indicates a tunnel from a valve to itself.
	ErrSelfTunnel = errors.New("network: tunnel loops back to its valve")

	// ErrAsymmetricTunnel indicates a one-way tunnel in a network that
	// requires every tunnel to be mirrored.
	ErrAsymmetricTunnel = errors.New("network: one-way tunnel")

	// ErrValveNotFound indicates a lookup referenced a non-existent valve.
	ErrValveNotFound = errors.New("network: valve not found")
)

// Valve is one node of the network.
//
// Rate is the flow released per turn once the valve is opened. Tunnels lists
// the IDs reachable in one turn, in declaration order.
type Valve struct {
	ID      string   `json:"id" yaml:"id"`
	Rate    int      `json:"rate" yaml:"rate"`
	Tunnels []string `json:"tunnels" yaml:"tunnels"`
}

// Option configures validation performed by New.
type Option func(*config)

type config struct {
	symmetric bool
}

// WithSymmetricTunnels rejects networks where some tunnel a→b has no b→a twin.
func WithSymmetricTunnels() Option {
	return func(c *config) { c.symmetric = true }
}

// Network is the immutable valve table.
//
// valves holds private copies of the declared valves; ids is the sorted
// enumeration surface and rateBearing the sorted subset with Rate > 0.
type Network struct {
	valves      map[string]*Valve
	ids         []string
	rateBearing []string
	totalRate   int
}
