package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/config"
	"github.com/sells-group/fleet-cli/internal/normalize"
	"github.com/sells-group/fleet-cli/internal/runlog"
)

var tripHeader = []string{"Time", "Lat", "Lon", "Duration", "Status", "Vehicle"}

// writeXLSX saves a single-sheet workbook of string cells, creating dir.
func writeXLSX(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	f := xlsx.NewFile()
	sh, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sh.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(dir, name)
	require.NoError(t, f.Save(path))
	return path
}

// fixture lays out two city directories with one three-row export each and
// two facility sheets with two rows each.
type fixture struct {
	root       string
	opts       Options
	facilities []string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	regina := filepath.Join(root, "Regina_Data")
	saskatoon := filepath.Join(root, "Saskatoon_Data")

	writeXLSX(t, regina, "jan.xlsx", [][]string{
		tripHeader,
		{"2019-01-02 08:00:00", "50.4452", "-104.6189", "1:30:00", "Driving", "R1"},
		{"2019-01-02 09:00:00", "50.4491", "-104.6151", "0:15:00", "Driving", "R1"},
		{"2019-01-03 10:00:00", "50.4012", "-104.5503", "2:00:00", "Driving", "R2"},
	})
	writeXLSX(t, saskatoon, "jan.xlsx", [][]string{
		tripHeader,
		{"2019-01-02 08:00:00", "52.1332", "-106.6700", "0:45:00", "Driving", "S1"},
		{"2019-01-02 11:00:00", "52.1290", "-106.6612", "1:00:00", "Driving", "S1"},
		{"2019-01-04 12:30:00", "52.1332", "-106.6700", "3:06:00", "Driving", "S2"},
	})

	other := filepath.Join(root, "Other_Input_Data")
	box := writeXLSX(t, other, "box_address.xlsx", [][]string{
		{"Status", "Lat", "Lon", "City", "Address"},
		{"box", "50.45", "-104.61", "Regina", "12 Albert St"},
		{"box", "52.13", "-106.66", "Saskatoon", "8 Idylwyld Dr"},
	})
	branches := writeXLSX(t, other, "sask_branches.xlsx", [][]string{
		{"Status", "Lat", "Lon", "City", "Branch Name"},
		{"Branch", "50.44", "-104.60", "Regina", "Regina North"},
		{"Branch", "52.12", "-106.64", "Saskatoon", "Saskatoon East"},
	})

	return fixture{
		root:       root,
		facilities: []string{box, branches},
		opts: Options{
			Sources: []config.SourceConfig{
				{Label: "Regina", Dir: regina},
				{Label: "Saskatoon", Dir: saskatoon},
			},
			Pattern:    "*.xlsx",
			Columns:    []int{0, 1, 2, 3, 4, 5},
			Workers:    2,
			Dates:      normalize.DateOptions{Layouts: config.DefaultTimeLayouts},
			Facilities: []string{box, branches},
			OutputCSV:  filepath.Join(root, "out", "Sask.csv"),
		},
	}
}

func newTestRun() *runlog.Run {
	return runlog.New(zap.NewNop())
}
