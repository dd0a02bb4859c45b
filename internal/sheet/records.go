package sheet

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/fleet-cli/internal/model"
)

// LoadRecordSet reads one source spreadsheet restricted to cols. The first
// non-blank row is the header; it must name every model.RequiredColumns entry
// (matched case-insensitively). Rows with blank or non-numeric coordinates are
// dropped. Duration and timestamp text are left for the normalizer.
func LoadRecordSet(path string, cols []int) (model.RecordSet, error) {
	rows, err := ReadXLSX(path, XLSXOptions{Columns: cols})
	if err != nil {
		return model.RecordSet{}, err
	}
	if len(rows) == 0 {
		return model.RecordSet{}, eris.Errorf("sheet: %s has no header row", path)
	}

	header := canonicalHeader(rows[0])
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, req := range model.RequiredColumns {
		if _, ok := idx[req]; !ok {
			return model.RecordSet{}, eris.Errorf("sheet: %s missing required column %q", path, req)
		}
	}

	set := model.RecordSet{Path: path, Columns: header}
	dropped := 0
	for n, row := range rows[1:] {
		get := func(col string) string {
			if i := idx[col]; i < len(row) {
				return row[i]
			}
			return ""
		}

		lat, latErr := strconv.ParseFloat(get(model.ColLat), 64)
		lon, lonErr := strconv.ParseFloat(get(model.ColLon), 64)
		if latErr != nil || lonErr != nil {
			dropped++
			continue
		}

		rec := model.Record{
			Row:          n + 2,
			Time:         get(model.ColTime),
			Lat:          lat,
			Lon:          lon,
			DurationText: get(model.ColDuration),
			Status:       get(model.ColStatus),
			Fields:       make(map[string]string),
		}
		for i, h := range header {
			if isRequired(h) || i >= len(row) {
				continue
			}
			rec.Fields[h] = row[i]
		}
		set.Records = append(set.Records, rec)
	}

	zap.L().Debug("sheet: loaded record set",
		zap.String("path", path),
		zap.Int("records", len(set.Records)),
		zap.Int("dropped_coordinates", dropped),
	)
	return set, nil
}

// LoadFacilities reads every column of an auxiliary facility spreadsheet. It
// returns the header and one model.Facility per data row.
func LoadFacilities(path string) ([]string, []model.Facility, error) {
	rows, err := ReadXLSX(path, XLSXOptions{})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, eris.Errorf("sheet: %s has no header row", path)
	}

	header := canonicalHeader(rows[0])
	facilities := make([]model.Facility, 0, len(rows)-1)
	for _, row := range rows[1:] {
		values := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(row) {
				values[h] = row[i]
			}
		}
		facilities = append(facilities, model.Facility{Path: path, Values: values})
	}
	return header, facilities, nil
}

// canonicalHeader trims header cells, names blank ones by position and maps
// case variants of the well-known columns onto their canonical spelling.
func canonicalHeader(raw []string) []string {
	fold := cases.Fold()
	known := make(map[string]string)
	for _, c := range append([]string{model.ColCity}, model.RequiredColumns...) {
		known[fold.String(c)] = c
	}

	header := make([]string, len(raw))
	for i, h := range raw {
		switch canon, ok := known[fold.String(h)]; {
		case h == "":
			header[i] = fmt.Sprintf("Unnamed: %d", i)
		case ok:
			header[i] = canon
		default:
			header[i] = h
		}
	}
	return header
}

func isRequired(col string) bool {
	for _, r := range model.RequiredColumns {
		if r == col {
			return true
		}
	}
	return false
}
