// Package export writes the Output Table as CSV and reads it back.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/fleet-cli/internal/model"
)

// WriteTable writes tbl to path as CSV with a header row, replacing any
// existing file. The parent directory is created if needed.
func WriteTable(path string, tbl *model.Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrap(err, "export: create output dir")
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv")
	}

	if err := EncodeTable(f, tbl); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrap(f.Close(), "export: close csv")
}

// EncodeTable writes tbl as CSV to w.
func EncodeTable(w io.Writer, tbl *model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tbl.Columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	if err := cw.WriteAll(tbl.Rows()); err != nil {
		return eris.Wrap(err, "export: write rows")
	}
	return nil
}

// Sheet is a CSV file read back as a header and rows.
type Sheet struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// ReadCSV reads a CSV file with a header row.
func ReadCSV(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "export: open csv")
	}
	defer f.Close()

	return DecodeCSV(f)
}

// DecodeCSV reads CSV with a header row from r.
func DecodeCSV(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "export: read csv")
	}
	if len(records) == 0 {
		return nil, eris.New("export: csv has no header row")
	}

	s := &Sheet{Header: records[0], Rows: records[1:], index: make(map[string]int)}
	for i, h := range s.Header {
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		s.Header[i] = h
		if _, dup := s.index[h]; !dup {
			s.index[h] = i
		}
	}
	return s, nil
}

// Require returns an error naming the first of cols missing from the header.
func (s *Sheet) Require(cols ...string) error {
	for _, c := range cols {
		if _, ok := s.index[c]; !ok {
			return eris.Errorf("export: csv missing column %q", c)
		}
	}
	return nil
}

// Get returns the cell in row for column col, or "" if either is absent.
func (s *Sheet) Get(row []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
