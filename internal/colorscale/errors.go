package colorscale

import "errors"

var (
	// ErrNoValues is returned when a scale or percentile is requested for an empty set.
	ErrNoValues = errors.New("no values to build a colour scale from")

	// ErrInvalidPercentile is returned for a percentile outside [0, 100] or NaN.
	ErrInvalidPercentile = errors.New("percentile must be within [0, 100]")

	// ErrInvalidPalette is returned when a palette has fewer than two colours
	// or a colour is not a hex string.
	ErrInvalidPalette = errors.New("palette needs at least two hex colours")

	// ErrInvalidDomain is returned when a domain end is NaN or infinite.
	ErrInvalidDomain = errors.New("colour scale domain must be finite")
)
