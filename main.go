package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/uinsaizu/rute/cmd/grid"
	"github.com/uinsaizu/rute/cmd/route"
)

func main() {
	cmd := &cli.Command{
		Name:    "rute",
		Usage:   "shortest path tools: campus road route map and grid visualizer",
		Version: "0.1.0",
		Commands: []*cli.Command{
			route.Cmd(),
			grid.Cmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		// Exit errors were already reported by the command.
		var exit cli.ExitCoder
		if !errors.As(err, &exit) {
			fmt.Println(err)
		}
		stop()
		os.Exit(1)
	}
}
