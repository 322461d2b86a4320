package route

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/uinsaizu/rute/config"
	"github.com/uinsaizu/rute/geo"
	"github.com/uinsaizu/rute/osm"
	planner "github.com/uinsaizu/rute/route"
	"github.com/uinsaizu/rute/store"
)

func Cmd() *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "find the shortest road route between two coordinates and save it as an interactive HTML map",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to YAML config file, flags override its values",
			},
			&cli.StringSliceFlag{
				Name:  "place",
				Usage: "place whose road network is downloaded, repeat for several places",
			},
			&cli.StringFlag{
				Name:  "network-type",
				Usage: "road network type: drive, walk, bike or all",
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "start coordinate as \"lat,lon\"",
			},
			&cli.StringFlag{
				Name:  "start-label",
				Usage: "label of the start marker",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "end coordinate as \"lat,lon\"",
			},
			&cli.StringFlag{
				Name:  "end-label",
				Usage: "label of the end marker",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "path of the HTML map to write",
			},
			&cli.IntFlag{
				Name:  "zoom",
				Usage: "initial map zoom level",
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "path to network cache database",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "always download the network and do not store it",
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "age after which a cached network is downloaded again, 0 keeps it forever",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "request timeout",
			},
			&cli.IntFlag{
				Name:  "retry",
				Usage: "retry count for each request",
			},
			&cli.StringFlag{
				Name:  "overpass-url",
				Usage: "Overpass API interpreter endpoint",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print debug log",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			fmt.Println("--- Aplikasi Pencari Rute Kampus UIN Saizu ---")

			res, err := run(ctx, cfg)
			if err != nil {
				return reportFailure(os.Stdout, err)
			}

			fmt.Println("\n--- SELESAI ---")
			fmt.Println("Silakan buka file HTML tersebut di browser Anda untuk melihat hasilnya.")
			fmt.Printf("Total jarak antar kampus: %.2f km\n", res.KM())

			return nil
		},
	}
}

// reportFailure prints err with the connectivity hint and returns an exit
// error with an empty message, so the error is not printed a second time.
func reportFailure(w io.Writer, err error) error {
	fmt.Fprintf(w, "\nOops, terjadi kesalahan: %s\n", err)
	fmt.Fprintln(w, "Pastikan Anda terhubung ke internet dan server Overpass dapat diakses.")
	log.Debugf("route failed: %+v", err)

	return cli.Exit("", 1)
}

// loadConfig starts from the defaults or the config file and applies every
// flag that was set on the command line.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if cmd.IsSet("place") {
		cfg.Places = cmd.StringSlice("place")
	}
	if cmd.IsSet("network-type") {
		cfg.NetworkType = cmd.String("network-type")
	}
	if cmd.IsSet("start") {
		p, err := geo.ParsePoint(cmd.String("start"))
		if err != nil {
			return cfg, fmt.Errorf("--start: %w", err)
		}
		cfg.Start.Point = p
	}
	if cmd.IsSet("start-label") {
		cfg.Start.Label = cmd.String("start-label")
	}
	if cmd.IsSet("end") {
		p, err := geo.ParsePoint(cmd.String("end"))
		if err != nil {
			return cfg, fmt.Errorf("--end: %w", err)
		}
		cfg.End.Point = p
	}
	if cmd.IsSet("end-label") {
		cfg.End.Label = cmd.String("end-label")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("zoom") {
		cfg.Zoom = int(cmd.Int("zoom"))
	}
	if cmd.IsSet("cache") {
		cfg.Cache.Path = cmd.String("cache")
	}
	if cmd.IsSet("no-cache") {
		cfg.Cache.Disabled = cmd.Bool("no-cache")
	}
	if cmd.IsSet("cache-ttl") {
		cfg.Cache.TTL = cmd.Duration("cache-ttl")
	}
	if cmd.IsSet("timeout") {
		cfg.Overpass.Timeout = cmd.Duration("timeout")
	}
	if cmd.IsSet("retry") {
		cfg.Overpass.Retry = int(cmd.Int("retry"))
	}
	if cmd.IsSet("overpass-url") {
		cfg.Overpass.URL = cmd.String("overpass-url")
	}

	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config) (*planner.Result, error) {
	var cache planner.Cache
	if !cfg.Cache.Disabled {
		db, err := store.Open(cfg.Cache.Path)
		if err != nil {
			log.Warnf("network cache disabled: %s", err)
		} else {
			defer func() {
				if err := db.Close(); err != nil {
					log.Warnf("%s", err)
				}
			}()
			cache = db
		}
	}

	p, err := planner.NewPlanner(cfg, osm.NewClient(cfg.ClientOptions()), cache)
	if err != nil {
		return nil, err
	}

	return p.Run(ctx)
}
