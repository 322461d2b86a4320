// Package route runs the whole campus route pipeline: download the road
// network, snap both markers to it, find the shortest path and save the map.
package route

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"github.com/uinsaizu/rute/bfs"
	"github.com/uinsaizu/rute/config"
	"github.com/uinsaizu/rute/dijkstra"
	"github.com/uinsaizu/rute/geo"
	"github.com/uinsaizu/rute/osm"
	"github.com/uinsaizu/rute/render"
	"github.com/uinsaizu/rute/store"
)

// Fetcher downloads and merges the street network of several places.
// *osm.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, places []string, nt osm.NetworkType, onPlace func(place string)) (*osm.Document, error)
}

// Cache keeps downloaded networks between runs. *store.Store implements it.
type Cache interface {
	Get(key string, ttl time.Duration) ([]byte, error)
	Put(key string, places []string, networkType string, payload []byte) error
}

// Result is the outcome of one run.
type Result struct {
	StartNode string
	EndNode   string
	Path      []string
	Coords    []geo.Point
	Meters    float64
	Output    string // saved map file
	Cached    bool   // network came from the cache

	// Components is the number of weakly connected pieces in the network.
	Components int
}

// KM is the route length in kilometres.
func (r *Result) KM() float64 {
	return r.Meters / 1000
}

// Planner runs the pipeline for one configuration.
type Planner struct {
	cfg     config.Config
	fetcher Fetcher
	cache   Cache // nil disables caching

	// Progress receives the download progress bar. Defaults to os.Stderr.
	Progress io.Writer
}

// NewPlanner validates cfg and returns a Planner. cache may be nil.
func NewPlanner(cfg config.Config, fetcher Fetcher, cache Cache) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fetcher == nil {
		return nil, errors.New("route: nil fetcher")
	}

	return &Planner{cfg: cfg, fetcher: fetcher, cache: cache, Progress: os.Stderr}, nil
}

// Run executes the four steps and returns the computed route.
// Errors are wrapped with the name of the step that failed.
func (p *Planner) Run(ctx context.Context) (*Result, error) {
	cfg := p.cfg
	nt, err := osm.ParseNetworkType(cfg.NetworkType)
	if err != nil {
		return nil, err
	}
	res := &Result{Output: cfg.Output}

	// 1) Network
	log.Infof("[1/4] Mengunduh data peta untuk %d kabupaten...", len(cfg.Places))
	doc, cached, err := p.loadDocument(ctx, nt)
	if err != nil {
		return nil, fmt.Errorf("download network: %w", err)
	}
	network, err := osm.Build(doc, nt)
	if err != nil {
		return nil, fmt.Errorf("download network: %w", err)
	}
	res.Cached = cached
	comps, err := bfs.Components(ctx, network.Graph)
	if err != nil {
		return nil, fmt.Errorf("download network: %w", err)
	}
	res.Components = len(comps)
	sw, ne := network.Bounds()
	log.Debugf("network bounds %s .. %s", sw, ne)
	log.Infof("      -> Selesai. Peta gabungan berhasil dibuat (%s simpul, %s ruas, %d komponen).",
		humanize.Comma(int64(network.NodeCount())), humanize.Comma(int64(network.Graph.EdgeCount())), len(comps))

	// 2) Snap markers to the nearest road nodes
	log.Infof("[2/4] Mencari node peta terdekat dari koordinat yang diberikan...")
	res.StartNode, err = p.snap(network, cfg.Start)
	if err != nil {
		return nil, fmt.Errorf("nearest node: %w", err)
	}
	res.EndNode, err = p.snap(network, cfg.End)
	if err != nil {
		return nil, fmt.Errorf("nearest node: %w", err)
	}
	if idx := bfs.ComponentIndex(comps); idx[res.StartNode] != idx[res.EndNode] {
		log.Warnf("start node %s and end node %s lie on disconnected parts of the road network", res.StartNode, res.EndNode)
	}
	log.Infof("      -> Selesai. Node peta terdekat ditemukan.")

	// 3) Shortest path by length
	log.Infof("[3/4] Menghitung rute terpendek menggunakan algoritma Dijkstra...")
	sp, err := dijkstra.ShortestPath(network.Graph, res.StartNode, res.EndNode, dijkstra.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}
	res.Path = sp.Path
	res.Meters = sp.Distance
	res.Coords, err = network.Coords(sp.Path)
	if err != nil {
		return nil, fmt.Errorf("shortest path: %w", err)
	}
	log.Infof("      -> Selesai. Rute ditemukan dengan total jarak %.2f km.", res.KM())

	// 4) Map
	log.Infof("[4/4] Membuat visualisasi peta interaktif...")
	err = render.Save(cfg.Output, render.Map{
		Zoom:       cfg.Zoom,
		Route:      res.Coords,
		Start:      render.Marker{Label: cfg.Start.Label, Point: cfg.Start.Point},
		End:        render.Marker{Label: cfg.End.Label, Point: cfg.End.Point},
		DistanceKM: res.KM(),
	})
	if err != nil {
		return nil, fmt.Errorf("render map: %w", err)
	}
	log.Infof("      -> Selesai. Peta berhasil disimpan sebagai '%s'.", cfg.Output)

	return res, nil
}

// loadDocument returns the network document from the cache when possible,
// otherwise downloads it and stores it. Cache failures only cost a download.
func (p *Planner) loadDocument(ctx context.Context, nt osm.NetworkType) (*osm.Document, bool, error) {
	places := p.cfg.Places
	key := store.Key(places, string(nt))

	if p.cache != nil {
		data, err := p.cache.Get(key, p.cfg.Cache.TTL)
		switch {
		case err == nil:
			doc, err := osm.Decode(data)
			if err == nil {
				log.Infof("      -> memakai peta tersimpan (%s)", humanize.Bytes(uint64(len(data))))
				return doc, true, nil
			}
			log.Warnf("cached network unreadable, downloading again: %s", err)
		case errors.Is(err, store.ErrCacheMiss):
			log.Debugf("no cached network for %q", key)
		default:
			log.Warnf("network cache unavailable: %s", err)
		}
	}

	bar := progressbar.NewOptions(
		len(places),
		progressbar.OptionSetWriter(p.Progress),
		progressbar.OptionSetDescription("mengunduh"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
	doc, err := p.fetcher.Fetch(ctx, places, nt, func(place string) {
		log.Debugf("downloaded %s", place)
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		return nil, false, err
	}

	if p.cache != nil {
		data, err := osm.Encode(doc)
		if err == nil {
			err = p.cache.Put(key, places, string(nt), data)
		}
		if err != nil {
			log.Warnf("failed to cache network: %s", err)
		}
	}

	return doc, false, nil
}

func (p *Planner) snap(network *osm.Network, m config.Marker) (string, error) {
	id, dist, err := network.NearestNode(m.Point)
	if err != nil {
		return "", err
	}
	if p.cfg.SnapWarn > 0 && dist > p.cfg.SnapWarn {
		log.Warnf("%s is %.0f m from the nearest road node %s", m.Label, dist, id)
	}
	log.Debugf("%s snapped to node %s (%.1f m)", m.Label, id, dist)

	return id, nil
}
