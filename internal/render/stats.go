package render

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Quantile returns the q-th quantile of values using linear interpolation
// between closest ranks. ok is false for an empty slice.
func Quantile(values []float64, q float64) (v float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo]), true
}

// RemoveOutliers keeps points whose crossover is at or below the q-th
// quantile of the subset.
func RemoveOutliers(points []Point, q float64) []Point {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Crossover
	}
	cut, ok := Quantile(values, q)
	if !ok {
		return nil
	}

	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Crossover <= cut {
			out = append(out, p)
		}
	}
	return out
}

// Sample keeps round(frac*len(points)) points chosen at random, in their
// original order. frac >= 1 keeps everything.
func Sample(points []Point, frac float64, rng *rand.Rand) []Point {
	if frac >= 1 {
		return append([]Point(nil), points...)
	}
	n := int(math.Round(frac * float64(len(points))))
	if n <= 0 {
		return nil
	}

	picked := rng.Perm(len(points))[:n]
	sort.Ints(picked)
	out := make([]Point, n)
	for i, idx := range picked {
		out[i] = points[idx]
	}
	return out
}

// Normalize sets Normal to the min-max scaled crossover of each point. A
// constant column scales to 0.
func Normalize(points []Point) {
	if len(points) == 0 {
		return
	}
	lo, hi := points[0].Crossover, points[0].Crossover
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Crossover)
		hi = math.Max(hi, p.Crossover)
	}

	span := hi - lo
	for i := range points {
		if span == 0 {
			points[i].Normal = 0
			continue
		}
		points[i].Normal = (points[i].Crossover - lo) / span
	}
}

// Color buckets a normalized intensity.
func Color(v float64) string {
	switch {
	case v < 0.25:
		return "green"
	case v < 0.75:
		return "orange"
	default:
		return "red"
	}
}
