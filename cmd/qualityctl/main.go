// Command qualityctl is a terminal client for the academic quality API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(os.Stdout).command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		stop()
		os.Exit(1)
	}
}
