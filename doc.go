// Package valvenet finds how much pressure one or two agents can release
// from a network of valves within a fixed number of turns.
//
// Moving through a tunnel costs one turn, opening a valve costs one turn,
// and an opened valve releases its rate on every remaining turn.
//
// Under the hood, everything is organized under a few subpackages:
//
//	network/  the valve table: IDs, rates, tunnels, validation
//	bfs/      breadth-first walker over any HasVertex/NeighborIDs graph
//	distance/ all-pairs shortest tunnel counts between key valves
//	search/   single- and dual-agent branch-and-bound engines
//	loader/   puzzle text and YAML input, instance digest
//
// Application code lives in internal/ (config, store, metrics, runner,
// server) and the valvenet command in cmd/valvenet.
//
// Quick start:
//
//	valves, _ := loader.LoadFile("input.txt")
//	inst, _ := loader.Build(ctx, valves, "AA")
//	eng, _ := search.NewEngine(inst.Net, inst.Dist, search.DefaultOptions())
//	res, _ := eng.Solve(ctx, 30)
//	fmt.Println(res.Score)
package valvenet
