// Package normalize converts the free-text Duration and Time columns of a
// record set into typed values, dropping rows that do not parse.
package normalize

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/model"
)

// DurationOptions configures ParseDurations.
type DurationOptions struct {
	// IncludeSeconds adds the seconds component to the hour total. When false
	// only hours and minutes count, matching historical output.
	IncludeSeconds bool
}

// ParseDurationHours converts "H:MM:SS" to fractional hours. It requires
// exactly three integer components.
func ParseDurationHours(s string, includeSeconds bool) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, eris.Errorf("normalize: duration %q: want H:MM:SS", s)
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, eris.Wrapf(err, "normalize: duration %q", s)
		}
		v[i] = n
	}

	hours := float64(v[0]) + float64(v[1])/60
	if includeSeconds {
		hours += float64(v[2]) / 3600
	}
	return hours, nil
}

// ParseDurations returns a copy of set in which each record's Duration holds
// hours. Records whose duration text does not parse are removed.
func ParseDurations(set model.RecordSet, opts DurationOptions) model.RecordSet {
	out := make([]model.Record, 0, len(set.Records))
	for _, rec := range set.Records {
		hours, err := ParseDurationHours(rec.DurationText, opts.IncludeSeconds)
		if err != nil {
			continue
		}
		rec.Duration = hours
		out = append(out, rec)
	}

	if dropped := len(set.Records) - len(out); dropped > 0 {
		zap.L().Debug("normalize: dropped malformed durations",
			zap.String("path", set.Path),
			zap.Int("dropped", dropped),
		)
	}
	return set.WithRecords(out)
}
