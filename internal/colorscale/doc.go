// Package colorscale maps numeric values onto a sequential colour palette.
//
// The domain of a Scale is fixed from the data with percentiles instead of
// the raw extremes, so a handful of outliers do not wash out the rest of the
// map: by default the lower bound is the truncated 5th percentile and the
// upper bound the truncated 95th percentile. Values outside the domain are
// clamped to the end colours.
package colorscale
