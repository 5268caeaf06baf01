package bfs_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/valvenet/bfs"
)

// BenchmarkWalk_Chain measures BFS on a linear chain graph of size N.
func BenchmarkWalk_Chain(b *testing.B) {
	const N = 10000
	g := make(adj, N+1)
	for i := 0; i <= N; i++ {
		id := fmt.Sprintf("v%d", i)
		if i > 0 {
			g[id] = append(g[id], fmt.Sprintf("v%d", i-1))
		}
		if i < N {
			g[id] = append(g[id], fmt.Sprintf("v%d", i+1))
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.Walk(g, "v0")
	}
}

// BenchmarkWalk_Targets measures the early exit on the same chain.
func BenchmarkWalk_Targets(b *testing.B) {
	const N = 10000
	g := make(adj, N+1)
	for i := 0; i <= N; i++ {
		id := fmt.Sprintf("v%d", i)
		if i > 0 {
			g[id] = append(g[id], fmt.Sprintf("v%d", i-1))
		}
		if i < N {
			g[id] = append(g[id], fmt.Sprintf("v%d", i+1))
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.Walk(g, "v0", bfs.WithTargets("v10"))
	}
}
