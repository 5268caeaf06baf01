// Command valvenet finds the best valve opening schedule for one or two
// agents, keeps a history of runs and serves the solver over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "valvenet:", err)
		os.Exit(1)
	}
}
