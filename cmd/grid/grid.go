package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/uinsaizu/rute/gridgraph"
	"github.com/uinsaizu/rute/gridview"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "grid",
		Usage: "interactive Dijkstra visualizer on a paintable grid (left click: start/end/wall, right click: erase, space: run, c: clear)",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "rows",
				Usage: "number of cells per side",
				Value: gridgraph.DefaultRows,
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "delay between animation frames, 0 shows the result at once",
				Value: 15 * time.Millisecond,
			},
			&cli.IntFlag{
				Name:  "per-frame",
				Usage: "search steps drawn per animation frame",
				Value: 1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := gridview.DefaultOptions()
			opts.Rows = int(cmd.Int("rows"))
			opts.Delay = cmd.Duration("delay")
			opts.PerFrame = int(cmd.Int("per-frame"))

			if opts.Rows < 1 {
				return fmt.Errorf("invalid row count: %d", opts.Rows)
			}

			log.Debugf("opening %dx%d grid", opts.Rows, opts.Rows)

			return gridview.Run(ctx, opts)
		},
	}
}
