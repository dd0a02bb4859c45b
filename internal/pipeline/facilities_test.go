package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fleet-cli/internal/model"
)

func TestMergeFacilities(t *testing.T) {
	fx := newFixture(t)
	tbl := Union(SourceTable{Columns: []string{"Time", "Lat", "Lon", "Status"}, Trips: []model.Trip{{City: "Regina"}}})

	require.NoError(t, MergeFacilities(tbl, fx.facilities))

	assert.Equal(t, 5, tbl.Len())
	require.Len(t, tbl.Facilities, 4)
	assert.Equal(t, "box", tbl.Facilities[0].Value(model.ColStatus))
	assert.Equal(t, "Branch", tbl.Facilities[3].Value(model.ColStatus))

	// Facility-only columns land after the derived ones.
	n := len(tbl.Columns)
	assert.Equal(t, []string{"Address", "Branch Name"}, tbl.Columns[n-2:])
}

func TestMergeFacilities_DuplicatesKept(t *testing.T) {
	fx := newFixture(t)
	tbl := Union()

	require.NoError(t, MergeFacilities(tbl, []string{fx.facilities[0], fx.facilities[0]}))
	assert.Len(t, tbl.Facilities, 4)
}

func TestMergeFacilities_MissingFile(t *testing.T) {
	tbl := Union()
	err := MergeFacilities(tbl, []string{filepath.Join(t.TempDir(), "missing.xlsx")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load facilities")
}
