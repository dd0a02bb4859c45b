// Package zone buckets coordinates into a coarse grid by rounding to two
// decimal places and counts how many records fall in each bucket.
package zone

import (
	"math"
	"sort"

	"github.com/twpayne/go-geom"

	"github.com/sells-group/fleet-cli/internal/model"
)

// Precision is the number of decimal places kept when rounding coordinates.
const Precision = 2

// Round rounds v to Precision decimals, halves to even.
func Round(v float64) float64 {
	scale := math.Pow(10, Precision)
	return math.RoundToEven(v*scale) / scale
}

// Key returns the zone key for a coordinate pair: both values rounded and
// joined with "-", e.g. "50.45--104.62" or "52.0--106.5".
func Key(lat, lon float64) string {
	return model.FormatCoord(Round(lat)) + "-" + model.FormatCoord(Round(lon))
}

// Assign sets LatRound, LonRound and Zone on every trip.
func Assign(trips []model.Trip) {
	for i := range trips {
		t := &trips[i]
		t.LatRound = Round(t.Lat)
		t.LonRound = Round(t.Lon)
		t.Zone = model.FormatCoord(t.LatRound) + "-" + model.FormatCoord(t.LonRound)
	}
}

// Count returns the number of trips per zone key. Zones must be assigned.
func Count(trips []model.Trip) map[string]int {
	counts := make(map[string]int)
	for _, t := range trips {
		counts[t.Zone]++
	}
	return counts
}

// Crossover writes each trip's zone count into Crossover and returns the
// counts. Row order is unchanged.
func Crossover(trips []model.Trip) map[string]int {
	counts := Count(trips)
	for i := range trips {
		trips[i].Crossover = counts[trips[i].Zone]
	}
	return counts
}

// Aggregate is the per-zone traversal count.
type Aggregate struct {
	Key       string
	Lat       float64
	Lon       float64
	Crossover int
}

// Point returns the zone's rounded coordinates as a WGS84 point (lon, lat).
func (a Aggregate) Point() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{a.Lon, a.Lat}).SetSRID(4326)
}

// Aggregates groups trips by zone, sorted by key.
func Aggregates(trips []model.Trip) []Aggregate {
	byKey := make(map[string]*Aggregate)
	for _, t := range trips {
		if t.Zone == "" {
			continue
		}
		a, ok := byKey[t.Zone]
		if !ok {
			a = &Aggregate{Key: t.Zone, Lat: t.LatRound, Lon: t.LonRound}
			byKey[t.Zone] = a
		}
		a.Crossover++
	}

	out := make([]Aggregate, 0, len(byKey))
	for _, a := range byKey {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
