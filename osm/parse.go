package osm

import (
	"encoding/json"
	"fmt"
	"sort"
)

// overpassResponse mirrors the subset of Overpass JSON output we read.
type overpassResponse struct {
	Remark   string            `json:"remark"`
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

// Parse decodes an Overpass JSON body into a Document.
// Elements other than nodes and ways are ignored.
func Parse(data []byte) (*Document, error) {
	var resp overpassResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, err)
	}
	// Overpass reports runtime errors (timeouts, memory) in "remark" with HTTP 200.
	if resp.Remark != "" && len(resp.Elements) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, resp.Remark)
	}

	doc := &Document{}
	for _, el := range resp.Elements {
		switch el.Type {
		case "node":
			doc.Nodes = append(doc.Nodes, Node{ID: el.ID, Lat: el.Lat, Lon: el.Lon})
		case "way":
			doc.Ways = append(doc.Ways, Way{ID: el.ID, Nodes: el.Nodes, Tags: el.Tags})
		}
	}

	return doc, nil
}

// Merge unions several documents, dropping duplicate nodes and ways (by ID).
// Output is sorted by ID so merged documents are deterministic.
func Merge(docs ...*Document) *Document {
	nodes := make(map[int64]Node)
	ways := make(map[int64]Way)
	for _, d := range docs {
		if d == nil {
			continue
		}
		for _, n := range d.Nodes {
			nodes[n.ID] = n
		}
		for _, w := range d.Ways {
			ways[w.ID] = w
		}
	}

	out := &Document{
		Nodes: make([]Node, 0, len(nodes)),
		Ways:  make([]Way, 0, len(ways)),
	}
	for _, n := range nodes {
		out.Nodes = append(out.Nodes, n)
	}
	for _, w := range ways {
		out.Ways = append(out.Ways, w)
	}
	sort.Slice(out.Nodes, func(i, j int) bool { return out.Nodes[i].ID < out.Nodes[j].ID })
	sort.Slice(out.Ways, func(i, j int) bool { return out.Ways[i].ID < out.Ways[j].ID })

	return out
}

// Encode serialises a Document for caching.
func Encode(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}

// Decode reverses Encode.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: cached document: %s", ErrBadResponse, err)
	}

	return &doc, nil
}
