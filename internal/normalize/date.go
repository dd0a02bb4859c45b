package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/model"
)

// DateLayout is the format of the derived date column.
const DateLayout = "2006-01-02"

// DateOptions configures ParseDates.
type DateOptions struct {
	// Layouts are tried in order. A value that is a plain number is read as
	// an Excel serial date instead.
	Layouts []string
	// Strict turns an unparseable timestamp into an error for the whole set
	// instead of dropping the row.
	Strict bool
}

// ParseTimestamp parses s using the first matching layout.
func ParseTimestamp(s string, layouts []string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, eris.New("normalize: empty timestamp")
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return time.Time{}, eris.Errorf("normalize: timestamp serial %q out of range", s)
		}
		return xlsx.TimeFromExcelTime(serial, false), nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("normalize: timestamp %q matches no known layout", s)
}

// ParseDates returns a copy of set with DateTime and Date filled in.
// Unparseable rows are dropped, or fail the set when opts.Strict is set.
func ParseDates(set model.RecordSet, opts DateOptions) (model.RecordSet, error) {
	out := make([]model.Record, 0, len(set.Records))
	for _, rec := range set.Records {
		t, err := ParseTimestamp(rec.Time, opts.Layouts)
		if err != nil {
			if opts.Strict {
				return model.RecordSet{}, eris.Wrapf(err, "normalize: %s row %d", set.Path, rec.Row)
			}
			continue
		}
		rec.DateTime = t
		rec.Date = t.Format(DateLayout)
		out = append(out, rec)
	}

	if dropped := len(set.Records) - len(out); dropped > 0 {
		zap.L().Warn("normalize: dropped unparseable timestamps",
			zap.String("path", set.Path),
			zap.Int("dropped", dropped),
		)
	}
	return set.WithRecords(out), nil
}
