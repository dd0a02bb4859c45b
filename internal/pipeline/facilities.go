package pipeline

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/fleet-cli/internal/model"
	"github.com/sells-group/fleet-cli/internal/sheet"
)

// MergeFacilities appends the rows of each facility spreadsheet to tbl. Rows
// are added as-is: no key matching, no deduplication. Columns the table lacks
// are appended to its schema.
func MergeFacilities(tbl *model.Table, paths []string) error {
	for _, path := range paths {
		header, rows, err := sheet.LoadFacilities(path)
		if err != nil {
			return eris.Wrapf(err, "pipeline: load facilities %s", path)
		}
		tbl.AddColumns(header...)
		tbl.Facilities = append(tbl.Facilities, rows...)
	}
	return nil
}
