package model

import (
	"errors"
	"math"
	"testing"
)

// atlanta is the rectangle used throughout the tests.
var atlanta = Bounds{MinLat: 33.6, MaxLat: 33.9, MinLon: -84.5, MaxLon: -84.2}

// TestBoundsAdmits tests the strict rectangle membership predicate.
func TestBoundsAdmits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{name: "inside", lat: 33.7, lon: -84.3, want: true},
		{name: "far outside", lat: 10, lon: 10, want: false},
		{name: "on min latitude edge", lat: 33.6, lon: -84.3, want: false},
		{name: "on max latitude edge", lat: 33.9, lon: -84.3, want: false},
		{name: "on min longitude edge", lat: 33.7, lon: -84.5, want: false},
		{name: "on max longitude edge", lat: 33.7, lon: -84.2, want: false},
		{name: "north of rectangle", lat: 34.0, lon: -84.3, want: false},
		{name: "east of rectangle", lat: 33.7, lon: -84.1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := Record{ID: "1", Latitude: tt.lat, Longitude: tt.lon, Value: 1}
			if got := atlanta.Admits(r); got != tt.want {
				t.Errorf("Admits(%v, %v) = %v, expected %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

// TestBoundsValidate tests rectangle validation.
func TestBoundsValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid rectangle", func(t *testing.T) {
		t.Parallel()
		if err := atlanta.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("inverted latitude", func(t *testing.T) {
		t.Parallel()
		b := Bounds{MinLat: 34, MaxLat: 33, MinLon: -85, MaxLon: -84}
		if err := b.Validate(); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("expected ErrInvalidBounds, got %v", err)
		}
	})

	t.Run("empty longitude span", func(t *testing.T) {
		t.Parallel()
		b := Bounds{MinLat: 33, MaxLat: 34, MinLon: -84, MaxLon: -84}
		if err := b.Validate(); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("expected ErrInvalidBounds, got %v", err)
		}
	})

	t.Run("NaN value", func(t *testing.T) {
		t.Parallel()
		b := Bounds{MinLat: math.NaN(), MaxLat: 34, MinLon: -85, MaxLon: -84}
		if err := b.Validate(); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("expected ErrInvalidBounds, got %v", err)
		}
	})

	t.Run("zero bounds are detected", func(t *testing.T) {
		t.Parallel()
		if !(Bounds{}).IsZero() {
			t.Error("expected zero bounds to report IsZero")
		}
		if atlanta.IsZero() {
			t.Error("expected configured bounds not to report IsZero")
		}
	})
}

// TestQueryCityStateZip tests the search parameter formatting.
func TestQueryCityStateZip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{name: "city and state", query: Query{City: "Atlanta", State: "GA"}, want: "Atlanta+GA"},
		{name: "city only", query: Query{City: "Atlanta"}, want: "Atlanta"},
		{name: "state only", query: Query{State: "GA"}, want: "GA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.query.CityStateZip(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestParseBounds tests the command-line form of Bounds.
func TestParseBounds(t *testing.T) {
	t.Parallel()

	t.Run("round trip through String", func(t *testing.T) {
		t.Parallel()

		want := Bounds{MinLat: 33.6, MaxLat: 33.9, MinLon: -84.5, MaxLon: -84.2}
		got, err := ParseBounds(want.String())
		if err != nil {
			t.Fatalf("ParseBounds() error = %v", err)
		}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("spaces are allowed", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseBounds("33.6, 33.9, -84.5, -84.2"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	for _, in := range []string{"", "1,2,3", "a,b,c,d", "33.9,33.6,-84.5,-84.2"} {
		if _, err := ParseBounds(in); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("%q: expected ErrInvalidBounds, got %v", in, err)
		}
	}
}
