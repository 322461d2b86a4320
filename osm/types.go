// Package osm defines the OpenStreetMap data model, network types and
// sentinel errors used when turning Overpass responses into a road graph.
package osm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/uinsaizu/rute/geo"
)

// Sentinel errors for the osm package.
var (
	// ErrUnknownNetworkType indicates a network type other than drive, walk, bike or all.
	ErrUnknownNetworkType = errors.New("osm: unknown network type")

	// ErrPlaceNotFound indicates the geocoder returned no area for a place query.
	ErrPlaceNotFound = errors.New("osm: place not found")

	// ErrRequest indicates an HTTP request failed after all retries.
	ErrRequest = errors.New("osm: request failed")

	// ErrBadResponse indicates a response body could not be decoded.
	ErrBadResponse = errors.New("osm: malformed response")

	// ErrEmptyNetwork indicates that no usable street segment was found.
	ErrEmptyNetwork = errors.New("osm: network has no edges")

	// ErrNodeNotFound indicates a path referenced a node missing from the network.
	ErrNodeNotFound = errors.New("osm: node not found in network")
)

// NetworkType selects which ways are downloaded and how one-way tags apply.
type NetworkType string

const (
	// Drive keeps public drivable streets and honours one-way restrictions.
	Drive NetworkType = "drive"
	// Walk keeps walkable ways; every way is usable in both directions.
	Walk NetworkType = "walk"
	// Bike keeps cyclable ways and honours one-way restrictions.
	Bike NetworkType = "bike"
	// All keeps every non-abandoned highway.
	All NetworkType = "all"
)

// ParseNetworkType validates s and returns it as a NetworkType.
func ParseNetworkType(s string) (NetworkType, error) {
	nt := NetworkType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := wayFilters[nt]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNetworkType, s)
	}

	return nt, nil
}

// Bidirectional reports whether one-way tags are ignored for this network type.
func (nt NetworkType) Bidirectional() bool {
	return nt == Walk
}

// Node is an OSM node with its coordinate.
type Node struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point returns the node position.
func (n Node) Point() geo.Point {
	return geo.Point{Lat: n.Lat, Lon: n.Lon}
}

// Way is an OSM way: an ordered node list plus tags.
type Way struct {
	ID    int64             `json:"id"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags,omitempty"`
}

// Document is the decoded content of one or more Overpass responses.
type Document struct {
	Nodes []Node `json:"nodes"`
	Ways  []Way  `json:"ways"`
}

// Place is a geocoded place string.
type Place struct {
	Query       string
	DisplayName string
	OSMType     string
	OSMID       int64
}

// AreaID converts the OSM object to an Overpass area ID.
// Relations map to 3600000000+id and ways to 2400000000+id.
func (p Place) AreaID() (int64, error) {
	switch p.OSMType {
	case "relation":
		return 3600000000 + p.OSMID, nil
	case "way":
		return 2400000000 + p.OSMID, nil
	default:
		return 0, fmt.Errorf("%w: %q is a %s, not an area", ErrPlaceNotFound, p.Query, p.OSMType)
	}
}
