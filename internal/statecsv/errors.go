package statecsv

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingStateColumn is returned when the header has no "State" column.
	ErrMissingStateColumn = errors.New(`csv header has no "State" column`)

	// ErrNoMetricColumn is returned when "State" is the last column, leaving no metric.
	ErrNoMetricColumn = errors.New("csv has no metric column after the State column")

	// ErrEmpty is returned for a file without a header row.
	ErrEmpty = errors.New("csv is empty")

	// ErrNotFinite is wrapped by ParseError for NaN and infinite metrics.
	ErrNotFinite = errors.New("value is not a finite number")
)

// ParseError reports a metric cell that is not a finite number.
type ParseError struct {
	// Line is the 1-based line number in the file.
	Line int

	// Column is the header name of the metric column.
	Column string

	// Value is the offending cell.
	Value string

	// Err is the underlying conversion error.
	Err error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %q: cannot parse %q as a finite number", e.Line, e.Column, e.Value)
}

// Unwrap returns the conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
