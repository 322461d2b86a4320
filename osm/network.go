package osm

import (
	"fmt"
	"math"
	"strconv"

	"github.com/uinsaizu/rute/core"
	"github.com/uinsaizu/rute/geo"
)

// Metadata keys stored on every network vertex.
const (
	MetaLat = "lat"
	MetaLon = "lon"
)

// Network is a routable street graph built from a Document.
// Edge weights are segment lengths in metres.
type Network struct {
	Graph *core.Graph
	Type  NetworkType

	points map[string]geo.Point
	ids    []string    // vertex IDs, sorted, aligned with pts
	pts    []geo.Point // positions for nearest-node lookup
}

// Build turns doc into a Network. Every connected component is kept.
//
// For each way, consecutive node pairs become edges weighted by their
// great-circle length. Unless the network type is bidirectional, ways tagged
// oneway=yes|true|1 or junction=roundabout get a forward-only edge and
// oneway=-1|reverse a backward-only edge.
func Build(doc *Document, nt NetworkType) (*Network, error) {
	if _, ok := wayFilters[nt]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNetworkType, nt)
	}

	// 1) Index node positions
	pos := make(map[int64]geo.Point, len(doc.Nodes))
	for _, n := range doc.Nodes {
		pos[n.ID] = n.Point()
	}

	// 2) Add one edge per consecutive node pair
	g := core.NewGraph(core.WithWeighted(), core.WithMultiEdges(), core.WithLoops())
	net := &Network{Graph: g, Type: nt, points: make(map[string]geo.Point)}
	for _, w := range doc.Ways {
		dir := direction(w.Tags, nt)
		for i := 1; i < len(w.Nodes); i++ {
			a, b := w.Nodes[i-1], w.Nodes[i]
			if dir < 0 {
				a, b = b, a
			}
			pa, okA := pos[a]
			pb, okB := pos[b]
			if !okA || !okB || a == b {
				continue
			}
			from, to := nodeID(a), nodeID(b)
			if err := net.addVertex(from, pa); err != nil {
				return nil, err
			}
			if err := net.addVertex(to, pb); err != nil {
				return nil, err
			}
			var opts []core.EdgeOption
			if dir != 0 {
				opts = append(opts, core.WithEdgeDirected(true))
			}
			if _, err := g.AddEdge(from, to, geo.Distance(pa, pb), opts...); err != nil {
				return nil, fmt.Errorf("way %d: %w", w.ID, err)
			}
		}
	}
	if g.EdgeCount() == 0 {
		return nil, ErrEmptyNetwork
	}

	// 3) Freeze the lookup arrays
	net.ids = g.Vertices()
	net.pts = make([]geo.Point, len(net.ids))
	for i, id := range net.ids {
		net.pts[i] = net.points[id]
	}

	return net, nil
}

// addVertex records the position of id on first sight.
func (n *Network) addVertex(id string, p geo.Point) error {
	if _, ok := n.points[id]; ok {
		return nil
	}
	n.points[id] = p
	if err := n.Graph.SetMetadata(id, MetaLat, p.Lat); err != nil {
		return err
	}

	return n.Graph.SetMetadata(id, MetaLon, p.Lon)
}

// direction returns 0 for two-way, 1 for forward-only and -1 for backward-only.
func direction(tags map[string]string, nt NetworkType) int {
	if nt.Bidirectional() {
		return 0
	}
	switch tags["oneway"] {
	case "yes", "true", "1":
		return 1
	case "-1", "reverse":
		return -1
	case "no", "false", "0":
		return 0
	}
	if tags["junction"] == "roundabout" {
		return 1
	}

	return 0
}

func nodeID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// NodeCount returns the number of routable nodes.
func (n *Network) NodeCount() int {
	return len(n.ids)
}

// Point returns the position of node id.
func (n *Network) Point(id string) (geo.Point, error) {
	p, ok := n.points[id]
	if !ok {
		return geo.Point{}, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}

	return p, nil
}

// NearestNode returns the node closest to p and the distance to it in metres.
// Complexity: O(V).
func (n *Network) NearestNode(p geo.Point) (string, float64, error) {
	idx, d, err := geo.Nearest(n.pts, p)
	if err != nil {
		return "", 0, err
	}

	return n.ids[idx], d, nil
}

// Coords maps a node path to positions.
func (n *Network) Coords(path []string) ([]geo.Point, error) {
	out := make([]geo.Point, 0, len(path))
	for _, id := range path {
		p, err := n.Point(id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, nil
}

// Bounds returns the south-west and north-east corners of all nodes.
func (n *Network) Bounds() (sw, ne geo.Point) {
	if len(n.pts) == 0 {
		return
	}
	sw, ne = n.pts[0], n.pts[0]
	for _, p := range n.pts[1:] {
		sw.Lat = math.Min(sw.Lat, p.Lat)
		sw.Lon = math.Min(sw.Lon, p.Lon)
		ne.Lat = math.Max(ne.Lat, p.Lat)
		ne.Lon = math.Max(ne.Lon, p.Lon)
	}

	return sw, ne
}
