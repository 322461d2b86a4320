package osm_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uinsaizu/rute/dijkstra"
	"github.com/uinsaizu/rute/geo"
	"github.com/uinsaizu/rute/osm"
)

// loadFixture parses testdata/overpass.json: a one-way square 1-2-3-4 plus
// a detached segment 5-6.
func loadFixture(t *testing.T) *osm.Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "overpass.json"))
	require.NoError(t, err)
	doc, err := osm.Parse(data)
	require.NoError(t, err)

	return doc
}

func TestParse(t *testing.T) {
	doc := loadFixture(t)
	assert.Len(t, doc.Nodes, 6)
	assert.Len(t, doc.Ways, 4)
	assert.Equal(t, "yes", doc.Ways[1].Tags["oneway"])

	_, err := osm.Parse([]byte("{not json"))
	assert.ErrorIs(t, err, osm.ErrBadResponse)

	_, err = osm.Parse([]byte(`{"remark":"runtime error: Query timed out","elements":[]}`))
	assert.ErrorIs(t, err, osm.ErrBadResponse)
}

func TestMergeAndEncode(t *testing.T) {
	doc := loadFixture(t)
	extra := &osm.Document{
		Nodes: []osm.Node{{ID: 6, Lat: -7.38, Lon: 109.26}, {ID: 7, Lat: -7.37, Lon: 109.27}},
		Ways:  []osm.Way{{ID: 13, Nodes: []int64{5, 6}}, {ID: 14, Nodes: []int64{6, 7}}},
	}
	merged := osm.Merge(doc, nil, extra)
	assert.Len(t, merged.Nodes, 7)
	assert.Len(t, merged.Ways, 5)
	assert.Equal(t, int64(1), merged.Nodes[0].ID)

	data, err := osm.Encode(merged)
	require.NoError(t, err)
	back, err := osm.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, merged, back)
}

func TestBuild_Drive(t *testing.T) {
	net, err := osm.Build(loadFixture(t), osm.Drive)
	require.NoError(t, err)

	g := net.Graph
	assert.Equal(t, 6, net.NodeCount())
	assert.Equal(t, 5, g.EdgeCount(), "1-2, 2→3, 3-4, 4-1, 5-6")
	assert.True(t, g.HasEdge("2", "3"))
	assert.False(t, g.HasEdge("3", "2"), "way 11 is one-way")
	assert.True(t, g.HasEdge("4", "3"))

	// Against the one-way street, 3 reaches 2 only around the square.
	res, err := dijkstra.ShortestPath(g, "3", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "4", "1", "2"}, res.Path)

	want := geo.Distance(geo.Point{Lat: -7.40, Lon: 109.24}, geo.Point{Lat: -7.40, Lon: 109.23}) +
		geo.Distance(geo.Point{Lat: -7.40, Lon: 109.23}, geo.Point{Lat: -7.41, Lon: 109.23}) +
		geo.Distance(geo.Point{Lat: -7.41, Lon: 109.23}, geo.Point{Lat: -7.41, Lon: 109.24})
	assert.InDelta(t, want, res.Distance, 1e-6)

	// The detached segment is retained but unreachable.
	_, err = dijkstra.ShortestPath(g, "1", "6")
	assert.ErrorIs(t, err, dijkstra.ErrNoPath)

	v, err := g.Vertex("5")
	require.NoError(t, err)
	assert.Equal(t, -7.39, v.Metadata[osm.MetaLat])
	assert.Equal(t, 109.25, v.Metadata[osm.MetaLon])
}

func TestBuild_WalkIgnoresOneway(t *testing.T) {
	net, err := osm.Build(loadFixture(t), osm.Walk)
	require.NoError(t, err)
	assert.True(t, net.Graph.HasEdge("3", "2"))
}

func TestBuild_ReverseAndRoundabout(t *testing.T) {
	doc := &osm.Document{
		Nodes: []osm.Node{{ID: 1, Lat: 0, Lon: 0}, {ID: 2, Lat: 0, Lon: 0.001}, {ID: 3, Lat: 0.001, Lon: 0.001}},
		Ways: []osm.Way{
			{ID: 1, Nodes: []int64{1, 2}, Tags: map[string]string{"oneway": "-1"}},
			{ID: 2, Nodes: []int64{2, 3}, Tags: map[string]string{"junction": "roundabout"}},
			{ID: 3, Nodes: []int64{3, 99}}, // dangling node reference is skipped
		},
	}
	net, err := osm.Build(doc, osm.Drive)
	require.NoError(t, err)
	g := net.Graph
	assert.True(t, g.HasEdge("2", "1"))
	assert.False(t, g.HasEdge("1", "2"))
	assert.True(t, g.HasEdge("2", "3"))
	assert.False(t, g.HasEdge("3", "2"))
	assert.Equal(t, 3, net.NodeCount())
}

func TestBuild_Errors(t *testing.T) {
	_, err := osm.Build(&osm.Document{}, osm.Drive)
	assert.ErrorIs(t, err, osm.ErrEmptyNetwork)

	_, err = osm.Build(&osm.Document{}, osm.NetworkType("boat"))
	assert.ErrorIs(t, err, osm.ErrUnknownNetworkType)
}

func TestNearestNodeAndCoords(t *testing.T) {
	net, err := osm.Build(loadFixture(t), osm.Drive)
	require.NoError(t, err)

	id, d, err := net.NearestNode(geo.Point{Lat: -7.4101, Lon: 109.2401})
	require.NoError(t, err)
	assert.Equal(t, "2", id)
	assert.Less(t, d, 20.0)

	pts, err := net.Coords([]string{"1", "2"})
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{{Lat: -7.41, Lon: 109.23}, {Lat: -7.41, Lon: 109.24}}, pts)

	_, err = net.Coords([]string{"1", "404"})
	assert.ErrorIs(t, err, osm.ErrNodeNotFound)

	sw, ne := net.Bounds()
	assert.Equal(t, geo.Point{Lat: -7.41, Lon: 109.23}, sw)
	assert.Equal(t, geo.Point{Lat: -7.38, Lon: 109.26}, ne)
}

func TestParseNetworkType(t *testing.T) {
	nt, err := osm.ParseNetworkType(" Drive ")
	require.NoError(t, err)
	assert.Equal(t, osm.Drive, nt)
	assert.False(t, nt.Bidirectional())
	assert.True(t, osm.Walk.Bidirectional())

	_, err = osm.ParseNetworkType("boat")
	assert.ErrorIs(t, err, osm.ErrUnknownNetworkType)
}
