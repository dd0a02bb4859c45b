package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneAggregates(t *testing.T) {
	aggs, err := ZoneAggregates(testSheet(t, outputCSV))
	require.NoError(t, err)

	require.Len(t, aggs, 3)
	assert.Equal(t, "50.45--104.62", aggs[0].Key)
	assert.Equal(t, 2, aggs[0].Crossover)
	assert.Equal(t, "52.13--106.66", aggs[1].Key)
	assert.Equal(t, 1, aggs[1].Crossover)
}

func TestZoneAggregatesMissingColumns(t *testing.T) {
	_, err := ZoneAggregates(testSheet(t, "Status,Lat,Lon\nDriving,50,-104\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zone")
}

func TestZoneFeatures(t *testing.T) {
	aggs, err := ZoneAggregates(testSheet(t, outputCSV))
	require.NoError(t, err)

	data, err := json.Marshal(ZoneFeatures(aggs))
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Type     string `json:"type"`
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	require.Len(t, doc.Features, 3)
	f := doc.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.InDeltaSlice(t, []float64{-104.62, 50.45}, f.Geometry.Coordinates, 1e-9)
	assert.Equal(t, "50.45--104.62", f.Properties["zone"])
	assert.InDelta(t, 2.0, f.Properties["crossover"], 1e-9)
}

func TestZoneFeaturesEmpty(t *testing.T) {
	data, err := json.Marshal(ZoneFeatures(nil))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
}
