// Package main is the throwbench CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/throwbench/internal/cli"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM. Cancelling mid-run stops
	// in-flight batch analysis; jobs that never started report as cancelled.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
