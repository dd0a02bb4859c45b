package render

import (
	"bytes"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/sells-group/fleet-cli/internal/model"
)

// Icon colors for facility markers.
const (
	BoxIconColor    = "black"
	BranchIconColor = "darkred"
)

type marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	Popup string  `json:"popup"`
}

type circle struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Radius  float64 `json:"radius"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// Map is a Leaflet map assembled from layers and rendered as a single HTML
// document.
type Map struct {
	Title      string
	CenterLat  float64
	CenterLon  float64
	Zoom       int
	markers    []marker
	circles    []circle
	heat       [][2]float64
	heatRadius int
}

// NewMap creates an empty map centred on (lat, lon).
func NewMap(title string, lat, lon float64, zoom int) *Map {
	return &Map{Title: title, CenterLat: lat, CenterLon: lon, Zoom: zoom}
}

// AddMarkers adds one icon marker per point with a status popup.
func (m *Map) AddMarkers(points []Point, color string) error {
	for _, p := range points {
		popup, err := Popup(p)
		if err != nil {
			return err
		}
		m.markers = append(m.markers, marker{Lat: p.Lat, Lon: p.Lon, Color: color, Popup: popup})
	}
	return nil
}

// AddCircles adds one circle per point, radius crossover/divisor. The
// normalized crossover picks the color and sets stroke and fill opacity.
func (m *Map) AddCircles(points []Point, divisor float64) {
	for _, p := range points {
		m.circles = append(m.circles, circle{
			Lat:     p.Lat,
			Lon:     p.Lon,
			Radius:  p.Crossover / divisor,
			Color:   Color(p.Normal),
			Opacity: p.Normal,
		})
	}
}

// AddHeat sets the heat layer to the given points.
func (m *Map) AddHeat(points []Point, radius int) {
	m.heat = make([][2]float64, len(points))
	for i, p := range points {
		m.heat[i] = [2]float64{p.Lat, p.Lon}
	}
	m.heatRadius = radius
}

// Markers returns the number of icon markers.
func (m *Map) Markers() int { return len(m.markers) }

// Circles returns the number of circle markers.
func (m *Map) Circles() int { return len(m.circles) }

// HeatPoints returns the number of heat layer points.
func (m *Map) HeatPoints() int { return len(m.heat) }

// Render writes the map as an HTML document.
func (m *Map) Render(w io.Writer) error {
	data := struct {
		Title      string
		Center     [2]float64
		Zoom       int
		Markers    []marker
		Circles    []circle
		Heat       [][2]float64
		HeatRadius int
		HasHeat    bool
	}{
		Title:      m.Title,
		Center:     [2]float64{m.CenterLat, m.CenterLon},
		Zoom:       m.Zoom,
		Markers:    nonNil(m.markers),
		Circles:    nonNil(m.circles),
		Heat:       nonNil(m.heat),
		HeatRadius: m.heatRadius,
		HasHeat:    m.heat != nil,
	}
	return eris.Wrap(pageTemplate.Execute(w, data), "render: execute map template")
}

// Save renders the map to path, replacing any existing file.
func (m *Map) Save(path string) error {
	var buf bytes.Buffer
	if err := m.Render(&buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "render: create map dir")
		}
	}
	return eris.Wrap(os.WriteFile(path, buf.Bytes(), 0o644), "render: write map")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Popup renders the HTML popup for a point: status heading, then latitude,
// longitude and city. Values are HTML-escaped.
func Popup(p Point) (string, error) {
	var buf bytes.Buffer
	err := popupTemplate.Execute(&buf, map[string]string{
		"Status": p.Status,
		"Lat":    model.FormatFloat(p.Lat),
		"Lon":    model.FormatFloat(p.Lon),
		"City":   p.City,
	})
	if err != nil {
		return "", eris.Wrap(err, "render: execute popup template")
	}
	return buf.String(), nil
}

var popupTemplate = template.Must(template.New("popup").Parse(
	`<h3>{{.Status}}</h3><p><br><h4>{{.Lat}}</h4><h4>{{.Lon}}</h4><h4>{{.City}}</h4></p>`))

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
{{- if .HasHeat}}
<script src="https://unpkg.com/leaflet.heat@0.2.0/dist/leaflet-heat.js"></script>
{{- end}}
<style>
html, body, #map { width: 100%; height: 100%; margin: 0; padding: 0; }
.fleet-pin { width: 14px; height: 14px; border-radius: 50% 50% 50% 0; transform: rotate(-45deg); border: 2px solid #fff; }
</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map("map").setView({{.Center}}, {{.Zoom}});
L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
  maxZoom: 19,
  attribution: "&copy; OpenStreetMap contributors"
}).addTo(map);

var markers = {{.Markers}};
markers.forEach(function (m) {
  var icon = L.divIcon({
    className: "",
    html: '<div class="fleet-pin" style="background:' + m.color + '"></div>',
    iconSize: [18, 18],
    iconAnchor: [9, 18]
  });
  L.marker([m.lat, m.lon], {icon: icon}).bindPopup(m.popup).addTo(map);
});

var circles = {{.Circles}};
circles.forEach(function (c) {
  L.circleMarker([c.lat, c.lon], {
    radius: c.radius,
    color: c.color,
    fillColor: c.color,
    opacity: c.opacity,
    fill: true,
    fillOpacity: c.opacity
  }).addTo(map);
});
{{- if .HasHeat}}

L.heatLayer({{.Heat}}, {radius: {{.HeatRadius}}}).addTo(map);
{{- end}}
</script>
</body>
</html>
`))
