// Package render draws a computed route on an interactive Leaflet map and
// writes it as a standalone HTML page.
package render

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/uinsaizu/rute/geo"
)

// ErrEmptyRoute indicates a Map without route coordinates.
var ErrEmptyRoute = errors.New("render: route has no coordinates")

// Marker is a labelled pin.
type Marker struct {
	Label string
	geo.Point
}

// Map describes one rendered route.
type Map struct {
	Title      string
	Zoom       int // 12 when zero
	Route      []geo.Point
	Start, End Marker
	DistanceKM float64
	Algorithm  string // "Dijkstra" when empty
}

// Center is the midpoint of the start and end markers.
func (m Map) Center() geo.Point {
	return geo.Midpoint(m.Start.Point, m.End.Point)
}

//go:embed map.html.tmpl
var pageSource string

var page = template.Must(template.New("map").Parse(pageSource))

type pin struct {
	LatLng [2]float64
	Popup  string
	Color  string
	Icon   string
}

type view struct {
	Title     string
	Center    [2]float64
	Zoom      int
	Route     [][2]float64
	Popup     string
	Start     pin
	End       pin
	Distance  string
	Algorithm string
}

func latLng(p geo.Point) [2]float64 {
	return [2]float64{p.Lat, p.Lon}
}

// km formats a distance the way every label on the page shows it.
func km(v float64) string {
	return fmt.Sprintf("%.2f km", v)
}

func markerPopup(m Marker, extra ...string) string {
	lines := []string{
		template.HTMLEscapeString(m.Label),
		"Koordinat: " + m.Point.String(),
	}
	lines = append(lines, extra...)

	return strings.Join(lines, "<br>")
}

func newView(m Map) view {
	v := view{
		Title:     m.Title,
		Center:    latLng(m.Center()),
		Zoom:      m.Zoom,
		Route:     make([][2]float64, len(m.Route)),
		Popup:     "Rute terpendek: " + km(m.DistanceKM),
		Distance:  km(m.DistanceKM),
		Algorithm: m.Algorithm,
		Start: pin{
			LatLng: latLng(m.Start.Point),
			Popup:  markerPopup(m.Start),
			Color:  "green",
			Icon:   "play",
		},
		End: pin{
			LatLng: latLng(m.End.Point),
			Popup:  markerPopup(m.End, "Jarak: "+km(m.DistanceKM)),
			Color:  "red",
			Icon:   "stop",
		},
	}
	for i, p := range m.Route {
		v.Route[i] = latLng(p)
	}
	if v.Zoom == 0 {
		v.Zoom = 12
	}
	if v.Algorithm == "" {
		v.Algorithm = "Dijkstra"
	}
	if v.Title == "" {
		v.Title = "Rute terpendek"
	}

	return v
}

// Write renders m as HTML into w.
func Write(w io.Writer, m Map) error {
	if len(m.Route) == 0 {
		return ErrEmptyRoute
	}

	return page.Execute(w, newView(m))
}

// Save renders m into the file at filePath, replacing it.
func Save(filePath string, m Map) error {
	if len(m.Route) == 0 {
		return ErrEmptyRoute
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %s", filePath, err)
	}
	defer file.Close()

	if err := Write(file, m); err != nil {
		return fmt.Errorf("failed to render map %s: %w", filePath, err)
	}

	return file.Close()
}
