package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/render"
)

var renderInput string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render maps from the Output Table CSV",
}

var renderMarkersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Render the facility marker map with crossover circles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		return renderMarkers(ds)
	},
}

var renderHeatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Render the facility marker map with a driving heat layer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		return renderHeatmap(ds)
	},
}

var renderAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Render the heat map, then the marker map",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		if err := renderHeatmap(ds); err != nil {
			return err
		}
		return renderMarkers(ds)
	},
}

func loadDataset() (*render.Dataset, error) {
	path := renderInput
	if path == "" {
		path = cfg.Render.Input
	}
	ds, err := render.ReadDataset(path)
	if err != nil {
		return nil, err
	}
	zap.L().Info("render: output table loaded",
		zap.String("path", path),
		zap.Int("boxes", len(ds.Boxes)),
		zap.Int("branches", len(ds.Branches)),
		zap.Int("driving", len(ds.Driving)),
	)
	return ds, nil
}

func renderMarkers(ds *render.Dataset) error {
	m, err := render.MarkerMap(ds, render.OptionsFromConfig(cfg.Render))
	if err != nil {
		return err
	}
	if err := m.Save(cfg.Render.MarkerMap); err != nil {
		return err
	}
	zap.L().Info("render: marker map written",
		zap.String("path", cfg.Render.MarkerMap),
		zap.Int("markers", m.Markers()),
		zap.Int("circles", m.Circles()),
	)
	return nil
}

func renderHeatmap(ds *render.Dataset) error {
	m, err := render.HeatMap(ds, render.OptionsFromConfig(cfg.Render))
	if err != nil {
		return err
	}
	if err := m.Save(cfg.Render.HeatMap); err != nil {
		return err
	}
	zap.L().Info("render: heat map written",
		zap.String("path", cfg.Render.HeatMap),
		zap.Int("markers", m.Markers()),
		zap.Int("heat_points", m.HeatPoints()),
	)
	return nil
}

func init() {
	renderCmd.PersistentFlags().StringVar(&renderInput, "input", "", "Output Table CSV (default from config)")
	renderCmd.AddCommand(renderMarkersCmd, renderHeatmapCmd, renderAllCmd)
	rootCmd.AddCommand(renderCmd)
}
