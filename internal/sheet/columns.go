package sheet

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ParseColumnSpec converts a spreadsheet column selection such as
// "A:F,H,I,K" into zero-based column indices, in the order given.
// An empty spec selects nothing and yields nil.
func ParseColumnSpec(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	var cols []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, eris.Errorf("sheet: empty column in spec %q", spec)
		}

		lo, hi, isRange := strings.Cut(part, ":")
		start, err := ColumnIndex(lo)
		if err != nil {
			return nil, err
		}
		if !isRange {
			cols = append(cols, start)
			continue
		}

		end, err := ColumnIndex(hi)
		if err != nil {
			return nil, err
		}
		if end < start {
			return nil, eris.Errorf("sheet: reversed column range %q", part)
		}
		for i := start; i <= end; i++ {
			cols = append(cols, i)
		}
	}
	return cols, nil
}

// ColumnIndex converts a column letter ("A", "K", "AA") to a zero-based index.
func ColumnIndex(letters string) (int, error) {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	if letters == "" {
		return 0, eris.New("sheet: empty column letter")
	}

	n := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0, eris.Errorf("sheet: invalid column letter %q", letters)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1, nil
}
