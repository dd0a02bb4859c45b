package pipeline

import (
	"github.com/sells-group/fleet-cli/internal/model"
)

// SourceTable is every normalized record from one source directory, tagged
// with the source label.
type SourceTable struct {
	Label   string
	Columns []string
	Trips   []model.Trip
}

// Concat flattens a source's record sets in order into trips labelled with
// the source city. Columns is the union of the sets' headers.
func Concat(label string, sets []model.RecordSet) SourceTable {
	var cols model.Table
	n := 0
	for _, s := range sets {
		cols.AddColumns(s.Columns...)
		n += len(s.Records)
	}

	st := SourceTable{Label: label, Columns: cols.Columns, Trips: make([]model.Trip, 0, n)}
	for _, s := range sets {
		for _, rec := range s.Records {
			st.Trips = append(st.Trips, model.Trip{Record: rec, City: label})
		}
	}
	return st
}

// Union stacks source tables in order into one Output Table. The schema is
// the union of the source columns followed by model.DerivedColumns.
func Union(sources ...SourceTable) *model.Table {
	tbl := &model.Table{}
	n := 0
	for _, s := range sources {
		tbl.AddColumns(s.Columns...)
		n += len(s.Trips)
	}
	tbl.AddColumns(model.DerivedColumns...)

	tbl.Trips = make([]model.Trip, 0, n)
	for _, s := range sources {
		tbl.Trips = append(tbl.Trips, s.Trips...)
	}
	return tbl
}
