package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fleet-cli/internal/model"
)

func TestConcat(t *testing.T) {
	sets := []model.RecordSet{
		{Path: "a.xlsx", Columns: []string{"Time", "Lat", "Vehicle"}, Records: []model.Record{{Row: 2}, {Row: 3}}},
		{Path: "b.xlsx", Columns: []string{"Time", "Lat", "Driver"}, Records: []model.Record{{Row: 2}}},
		{Path: "c.xlsx", Columns: []string{"Time", "Lat"}},
	}

	st := Concat("Regina", sets)

	assert.Equal(t, "Regina", st.Label)
	assert.Equal(t, []string{"Time", "Lat", "Vehicle", "Driver"}, st.Columns)
	require.Len(t, st.Trips, 3)
	for _, tr := range st.Trips {
		assert.Equal(t, "Regina", tr.City)
		assert.Zero(t, tr.PathID)
	}
	assert.Equal(t, []int{2, 3, 2}, []int{st.Trips[0].Row, st.Trips[1].Row, st.Trips[2].Row})
}

func TestUnion(t *testing.T) {
	a := SourceTable{Label: "Regina", Columns: []string{"Time", "Lat"}, Trips: []model.Trip{{City: "Regina"}, {City: "Regina"}}}
	b := SourceTable{Label: "Saskatoon", Columns: []string{"Time", "Lon"}, Trips: []model.Trip{{City: "Saskatoon"}}}

	tbl := Union(a, b)

	want := append([]string{"Time", "Lat", "Lon"}, model.DerivedColumns...)
	assert.Equal(t, want, tbl.Columns)
	require.Len(t, tbl.Trips, 3)
	assert.Equal(t, "Regina", tbl.Trips[0].City)
	assert.Equal(t, "Saskatoon", tbl.Trips[2].City)
	assert.Empty(t, tbl.Facilities)
}

func TestUnion_Empty(t *testing.T) {
	tbl := Union()
	assert.Equal(t, model.DerivedColumns, tbl.Columns)
	assert.Equal(t, 0, tbl.Len())
}
