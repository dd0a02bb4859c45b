package render

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/config"
)

// Options configures both map builders.
type Options struct {
	CenterLat       float64
	CenterLon       float64
	Zoom            int
	SampleFrac      float64
	Seed            uint64
	OutlierQuantile float64
	RadiusDivisor   float64
	HeatRadius      int
}

// OptionsFromConfig builds Options from the render config section.
func OptionsFromConfig(cfg config.RenderConfig) Options {
	return Options{
		CenterLat:       cfg.CenterLat,
		CenterLon:       cfg.CenterLon,
		Zoom:            cfg.Zoom,
		SampleFrac:      cfg.SampleFrac,
		Seed:            cfg.Seed,
		OutlierQuantile: cfg.OutlierQuantile,
		RadiusDivisor:   cfg.RadiusDivisor,
		HeatRadius:      cfg.HeatRadius,
	}
}

// DrivingPoints applies the outlier filter, seeded sampling and
// normalization to the driving subset, in that order.
func DrivingPoints(driving []Point, opts Options) []Point {
	kept := RemoveOutliers(driving, opts.OutlierQuantile)
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	sampled := Sample(kept, opts.SampleFrac, rng)
	Normalize(sampled)

	zap.L().Debug("render: driving points prepared",
		zap.Int("driving", len(driving)),
		zap.Int("after_outliers", len(kept)),
		zap.Int("sampled", len(sampled)),
	)
	return sampled
}

// MarkerMap builds the facility marker map with crossover circles for a
// sample of driving points.
func MarkerMap(ds *Dataset, opts Options) (*Map, error) {
	m := NewMap("Driving Map", opts.CenterLat, opts.CenterLon, opts.Zoom)
	if err := addFacilities(m, ds); err != nil {
		return nil, err
	}
	m.AddCircles(DrivingPoints(ds.Driving, opts), opts.RadiusDivisor)
	return m, nil
}

// HeatMap builds the facility marker map with every driving point as a heat
// layer.
func HeatMap(ds *Dataset, opts Options) (*Map, error) {
	m := NewMap("Driving Heat Map", opts.CenterLat, opts.CenterLon, opts.Zoom)
	if err := addFacilities(m, ds); err != nil {
		return nil, err
	}
	m.AddHeat(ds.Driving, opts.HeatRadius)
	return m, nil
}

func addFacilities(m *Map, ds *Dataset) error {
	if err := m.AddMarkers(ds.Boxes, BoxIconColor); err != nil {
		return err
	}
	return m.AddMarkers(ds.Branches, BranchIconColor)
}
