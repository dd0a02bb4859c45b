package render

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/fleet-cli/internal/export"
	"github.com/sells-group/fleet-cli/internal/model"
	"github.com/sells-group/fleet-cli/internal/zone"
)

// ZoneAggregates recounts zones from an Output Table. Facility rows carry no
// zone and are skipped.
func ZoneAggregates(s *export.Sheet) ([]zone.Aggregate, error) {
	if err := s.Require(model.ColZone, model.ColLatRound, model.ColLonRound); err != nil {
		return nil, eris.Wrap(err, "render: zone columns")
	}

	var trips []model.Trip
	for i, row := range s.Rows {
		key := s.Get(row, model.ColZone)
		if key == "" {
			continue
		}
		lat, err := strconv.ParseFloat(s.Get(row, model.ColLatRound), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "render: row %d lat_rnd", i+2)
		}
		lon, err := strconv.ParseFloat(s.Get(row, model.ColLonRound), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "render: row %d lon_rnd", i+2)
		}
		trips = append(trips, model.Trip{Zone: key, LatRound: lat, LonRound: lon})
	}
	return zone.Aggregates(trips), nil
}

// ZoneFeatures converts zone aggregates to a GeoJSON FeatureCollection with
// one Point per zone.
func ZoneFeatures(aggs []zone.Aggregate) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(aggs))}
	for _, a := range aggs {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       a.Key,
			Geometry: a.Point(),
			Properties: map[string]any{
				"zone":      a.Key,
				"crossover": a.Crossover,
			},
		})
	}
	return fc
}
