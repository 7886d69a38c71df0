package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidBounds is returned by Bounds.Validate when the rectangle is empty,
// inverted or contains non-finite coordinates.
var ErrInvalidBounds = errors.New("invalid bounds: min must be strictly less than max and all values finite")

// Record is a single real-estate valuation data point.
// Records are values; a later observation of the same ID replaces the
// mapping entry rather than mutating the existing Record.
type Record struct {
	// ID is the upstream property identifier (Zillow zpid).
	ID string `json:"id"`

	// Latitude in decimal degrees (WGS84).
	Latitude float64 `json:"lat"`

	// Longitude in decimal degrees (WGS84).
	Longitude float64 `json:"lon"`

	// Value is the valuation with thousands separators already stripped.
	Value float64 `json:"value"`
}

// Bounds is a latitude/longitude rectangle.
// Membership is strict on all four edges: a point exactly on the boundary
// is outside.
type Bounds struct {
	MinLat float64 `json:"min_lat" yaml:"minLat"`
	MaxLat float64 `json:"max_lat" yaml:"maxLat"`
	MinLon float64 `json:"min_lon" yaml:"minLon"`
	MaxLon float64 `json:"max_lon" yaml:"maxLon"`
}

// Contains reports whether (lat, lon) lies strictly inside the rectangle.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat > b.MinLat && lat < b.MaxLat &&
		lon > b.MinLon && lon < b.MaxLon
}

// Admits is the crawl admission predicate.
func (b Bounds) Admits(r Record) bool {
	return b.Contains(r.Latitude, r.Longitude)
}

// IsZero reports whether no bounds were configured.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}

// Validate checks that the rectangle is non-empty and finite.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.MinLat, b.MaxLat, b.MinLon, b.MaxLon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidBounds
		}
	}
	if b.MinLat >= b.MaxLat || b.MinLon >= b.MaxLon {
		return ErrInvalidBounds
	}
	return nil
}

// String returns the rectangle as "minLat,maxLat,minLon,maxLon".
func (b Bounds) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
}

// ParseBounds parses the "minLat,maxLat,minLon,maxLon" form produced by String.
func ParseBounds(s string) (Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Bounds{}, fmt.Errorf("%w: expected minLat,maxLat,minLon,maxLon, got %q", ErrInvalidBounds, s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Bounds{}, fmt.Errorf("%w: %q is not a number", ErrInvalidBounds, p)
		}
		v[i] = f
	}

	b := Bounds{MinLat: v[0], MaxLat: v[1], MinLon: v[2], MaxLon: v[3]}
	if err := b.Validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

// StateValue is one row of the per-state valuation export used by the
// choropleth pipeline.
type StateValue struct {
	// State is the region key, matched against the boundary feature id.
	State string `json:"state"`

	// Value is the metric taken from the last column of the export.
	Value float64 `json:"value"`
}
