// Package main is the bookplate CLI executable
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/stolasapp/bookplate/internal/command"
)

func main() { os.Exit(run()) }

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := command.RootCommand().ExecuteContext(ctx)
	if err != nil {
		return 1
	}
	return 0
}
