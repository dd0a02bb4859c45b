package sheet

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // number of leading rows to skip
	Columns    []int  // zero-based column selection; nil keeps every column
}

// ReadXLSX reads an XLSX file and returns the non-blank rows as string slices,
// restricted to opts.Columns when set.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "sheet: open %s", path)
	}

	sh, err := getSheet(f, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "sheet: %s", path)
	}

	var rows [][]string
	for i, row := range sh.Rows {
		if i < opts.SkipRows || row == nil {
			continue
		}

		cells := rowToStrings(row, opts.Columns)
		if isBlank(cells) {
			continue
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sh, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("sheet %q not found", opts.SheetName)
		}
		return sh, nil
	}

	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row, cols []int) []string {
	if cols == nil {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = strings.TrimSpace(cell.String())
		}
		return cells
	}

	cells := make([]string, len(cols))
	for j, c := range cols {
		if c < len(row.Cells) && row.Cells[c] != nil {
			cells[j] = strings.TrimSpace(row.Cells[c].String())
		}
	}
	return cells
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
