package model

// Table is the Output Table: every trip followed by every facility row, under
// the union of their columns.
type Table struct {
	Columns    []string   `json:"columns"`
	Trips      []Trip     `json:"trips"`
	Facilities []Facility `json:"facilities"`
}

// AddColumns appends any of cols not already present, keeping first-seen order.
func (t *Table) AddColumns(cols ...string) {
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		seen[c] = true
	}
	for _, c := range cols {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		t.Columns = append(t.Columns, c)
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Trips) + len(t.Facilities)
}

// Rows renders every row as strings in column order. Cells a row has no
// value for are empty.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, t.Len())
	for _, trip := range t.Trips {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = trip.Value(c)
		}
		rows = append(rows, row)
	}
	for _, f := range t.Facilities {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = f.Value(c)
		}
		rows = append(rows, row)
	}
	return rows
}
