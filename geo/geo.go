// Package geo holds the small amount of spherical geometry the router needs:
// a latitude/longitude point, great-circle distance, map centring and
// nearest-point lookup.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadius is the mean Earth radius in metres used for great-circle lengths.
const EarthRadius = 6_371_009.0

var (
	// ErrBadPoint indicates a coordinate outside [-90,90]×[-180,180] or unparsable text.
	ErrBadPoint = errors.New("geo: invalid coordinate")

	// ErrNoPoints indicates Nearest was called with an empty candidate list.
	ErrNoPoints = errors.New("geo: no candidate points")
)

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

// String formats p as "(lat, lon)".
func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.Lat, p.Lon)
}

// Validate reports ErrBadPoint for out-of-range or non-finite coordinates.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: %s", ErrBadPoint, p)
	}

	return nil
}

// ParsePoint reads "lat,lon" (whitespace allowed around both numbers).
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("%w: %q, want \"lat,lon\"", ErrBadPoint, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: latitude %q: %s", ErrBadPoint, parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: longitude %q: %s", ErrBadPoint, parts[1], err)
	}
	p := Point{Lat: lat, Lon: lon}

	return p, p.Validate()
}

// Distance returns the haversine great-circle distance between a and b in metres.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h marginally above 1 for antipodal points.
	h = math.Min(1, h)

	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// Midpoint returns the arithmetic mean of a and b, used to centre the map.
func Midpoint(a, b Point) Point {
	return Point{Lat: (a.Lat + b.Lat) / 2, Lon: (a.Lon + b.Lon) / 2}
}

// Nearest returns the index of the point in pts closest to target and its
// distance in metres. Ties resolve to the lowest index.
// Complexity: O(n).
func Nearest(pts []Point, target Point) (int, float64, error) {
	if len(pts) == 0 {
		return -1, 0, ErrNoPoints
	}
	best, bestDist := 0, math.Inf(1)
	for i, p := range pts {
		if d := Distance(p, target); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best, bestDist, nil
}
