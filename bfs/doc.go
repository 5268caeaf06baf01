// Package bfs provides breadth-first search over any Graph exposing
// HasVertex and NeighborIDs, returning unweighted shortest-path distances,
// parent links, and visit order.
//
// What
//
//   - Explore vertices in non-decreasing hop count from a start vertex.
//   - Result carries the visit Order, the Depth of every discovered vertex
//     and its Parent in the BFS tree; PathTo rebuilds a route from them.
//   - OnVisit hook (may abort with an error).
//   - Filtering of individual neighbor edges via WithFilterNeighbor.
//   - MaxDepth limit (d>0) or explicit “no limit” (d==0).
//   - Early exit via WithTargets once every target has a recorded depth.
//
// Determinism
//
//	Neighbors are enqueued in the order Graph.NeighborIDs returns them, so
//	the visit sequence is reproducible for a fixed graph.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.Walk(net, "AA", bfs.WithTargets("BB", "DD"))
//	if err != nil {
//		// ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation,
//		// ErrNeighbors, context errors or OnVisit errors
//	}
//	d := res.Depth["DD"]
//
// Errors
//
//   - ErrGraphNil             if the graph is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      if invalid Option (e.g. negative MaxDepth).
//   - ErrNeighbors            if NeighborIDs fails for any vertex.
//   - Wrapped user-supplied hook errors from OnVisit.
//   - ErrNoPath               from PathTo for a vertex never reached.
package bfs
