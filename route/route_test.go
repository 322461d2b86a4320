package route

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uinsaizu/rute/config"
	"github.com/uinsaizu/rute/dijkstra"
	"github.com/uinsaizu/rute/geo"
	"github.com/uinsaizu/rute/osm"
	"github.com/uinsaizu/rute/store"
)

type fakeFetcher struct {
	calls int
	err   error
	doc   *osm.Document
}

func (f *fakeFetcher) Fetch(_ context.Context, places []string, _ osm.NetworkType, onPlace func(string)) (*osm.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range places {
		onPlace(p)
	}

	return f.doc, nil
}

func newFetcher(t *testing.T) *fakeFetcher {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "osm", "testdata", "overpass.json"))
	require.NoError(t, err)
	doc, err := osm.Parse(data)
	require.NoError(t, err)

	return &fakeFetcher{doc: doc}
}

// testConfig routes from next to node 3 to next to node 2, against the
// one-way street of the fixture.
func testConfig(t *testing.T) config.Config {
	cfg := config.Default()
	cfg.Places = []string{"A", "B"}
	cfg.Start = config.Marker{Label: "awal", Point: geo.Point{Lat: -7.4001, Lon: 109.2401}}
	cfg.End = config.Marker{Label: "tujuan", Point: geo.Point{Lat: -7.4101, Lon: 109.2401}}
	cfg.Output = filepath.Join(t.TempDir(), "rute.html")
	cfg.Cache.TTL = 0

	return cfg
}

func newPlanner(t *testing.T, cfg config.Config, f Fetcher, c Cache) *Planner {
	t.Helper()
	p, err := NewPlanner(cfg, f, c)
	require.NoError(t, err)
	p.Progress = io.Discard

	return p
}

func TestPlanner_Run(t *testing.T) {
	cfg := testConfig(t)
	f := newFetcher(t)

	res, err := newPlanner(t, cfg, f, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "3", res.StartNode)
	assert.Equal(t, "2", res.EndNode)
	assert.Equal(t, []string{"3", "4", "1", "2"}, res.Path)
	require.Len(t, res.Coords, 4)
	assert.Equal(t, geo.Point{Lat: -7.40, Lon: 109.24}, res.Coords[0])
	assert.InDelta(t, 3.32, res.KM(), 0.02, "three sides of a 0.01° square")
	assert.False(t, res.Cached)
	assert.Equal(t, 2, res.Components, "the square and the detached segment")

	info, err := os.Stat(cfg.Output)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPlanner_UsesCache(t *testing.T) {
	cfg := testConfig(t)
	f := newFetcher(t)
	cache, err := store.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	first, err := newPlanner(t, cfg, f, cache).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := newPlanner(t, cfg, f, cache).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, first.Path, second.Path)
	assert.InDelta(t, first.Meters, second.Meters, 1e-9)

	// A different network type is a different cache entry.
	cfg.NetworkType = "walk"
	walk, err := newPlanner(t, cfg, f, cache).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, walk.Cached)
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, []string{"3", "2"}, walk.Path, "walking ignores one-way")
}

func TestPlanner_Errors(t *testing.T) {
	boom := errors.New("overpass down")
	_, err := newPlanner(t, testConfig(t), &fakeFetcher{err: boom}, nil).Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "download network")

	// Node 6 sits on a detached segment.
	cfg := testConfig(t)
	cfg.End.Point = geo.Point{Lat: -7.3801, Lon: 109.2601}
	_, err = newPlanner(t, cfg, newFetcher(t), nil).Run(context.Background())
	require.ErrorIs(t, err, dijkstra.ErrNoPath)
	assert.Contains(t, err.Error(), "shortest path")

	cfg = testConfig(t)
	cfg.Zoom = 0
	_, err = NewPlanner(cfg, newFetcher(t), nil)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = NewPlanner(testConfig(t), nil, nil)
	assert.Error(t, err)
}
