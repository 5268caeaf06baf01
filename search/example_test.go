package search_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/valvenet/distance"
	"github.com/katalvlaran/valvenet/network"
	"github.com/katalvlaran/valvenet/search"
)

// ExampleEngine_Solve runs both engines on the ten-valve sample network.
func ExampleEngine_Solve() {
	net, err := network.New(referenceValves(), network.WithSymmetricTunnels())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	tab, err := distance.Build(net, "AA")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	eng, err := search.NewEngine(net, tab, search.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	one, _ := eng.Solve(context.Background(), 30)
	two, _ := eng.SolveTwo(context.Background(), 26)
	fmt.Println(one.Score, two.Score)
	// Output:
	// 1651 1707
}
