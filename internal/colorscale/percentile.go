package colorscale

import (
	"math"
	"slices"
)

// Percentile returns the p-th percentile of values, interpolating linearly
// between the two closest ranks. p is in [0, 100].
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoValues
	}
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, ErrInvalidPercentile
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}

	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, nil
}
