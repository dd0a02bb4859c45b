// Package render draws the Output Table onto interactive Leaflet maps.
package render

import (
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/fleet-cli/internal/export"
	"github.com/sells-group/fleet-cli/internal/model"
)

// Point is one Output Table row placed on a map.
type Point struct {
	Status    string
	Lat       float64
	Lon       float64
	City      string
	Crossover float64
	// Normal is Crossover min-max scaled to [0,1]; set by Normalize.
	Normal float64
}

// Dataset is the Output Table split by Status.
type Dataset struct {
	Boxes    []Point
	Branches []Point
	Driving  []Point
}

// RequiredColumns must be present in the CSV handed to the renderer.
var RequiredColumns = []string{model.ColStatus, model.ColLat, model.ColLon, model.ColCity, model.ColCrossover}

// ReadDataset reads an Output Table CSV and partitions it.
func ReadDataset(path string) (*Dataset, error) {
	s, err := export.ReadCSV(path)
	if err != nil {
		return nil, eris.Wrap(err, "render: read output table")
	}
	return Partition(s)
}

// Partition splits rows into box, branch and driving subsets by exact Status
// match. Rows with any other status are ignored. Coordinates must parse for
// every kept row, and crossover for every driving row.
func Partition(s *export.Sheet) (*Dataset, error) {
	if err := s.Require(RequiredColumns...); err != nil {
		return nil, eris.Wrap(err, "render: output table")
	}

	ds := &Dataset{}
	for i, row := range s.Rows {
		status := s.Get(row, model.ColStatus)
		switch status {
		case model.StatusBox, model.StatusBranch, model.StatusDriving:
		default:
			continue
		}

		p := Point{Status: status, City: s.Get(row, model.ColCity)}
		var err error
		if p.Lat, err = strconv.ParseFloat(s.Get(row, model.ColLat), 64); err != nil {
			return nil, eris.Wrapf(err, "render: row %d latitude", i+2)
		}
		if p.Lon, err = strconv.ParseFloat(s.Get(row, model.ColLon), 64); err != nil {
			return nil, eris.Wrapf(err, "render: row %d longitude", i+2)
		}

		switch status {
		case model.StatusBox:
			ds.Boxes = append(ds.Boxes, p)
		case model.StatusBranch:
			ds.Branches = append(ds.Branches, p)
		case model.StatusDriving:
			if p.Crossover, err = strconv.ParseFloat(s.Get(row, model.ColCrossover), 64); err != nil {
				return nil, eris.Wrapf(err, "render: row %d crossover", i+2)
			}
			ds.Driving = append(ds.Driving, p)
		}
	}
	return ds, nil
}
