// Package main is the entry point for the hpt CLI tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hobbyparts/hpt/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
