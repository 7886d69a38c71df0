package colorscale

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// OrRd is the 7-class orange-red ColorBrewer palette.
var OrRd = []string{"#fef0d9", "#fdd49e", "#fdbb84", "#fc8d59", "#ef6548", "#d7301f", "#990000"}

const (
	// DefaultLowerPercentile fixes the lower end of the domain.
	DefaultLowerPercentile = 5.0

	// DefaultUpperPercentile fixes the upper end of the domain.
	DefaultUpperPercentile = 95.0
)

// Scale is a linear colour map over [Min, Max].
type Scale struct {
	// Min and Max are the domain ends.
	Min float64
	Max float64

	// Palette holds the colour stops as hex strings, low to high.
	Palette []string

	// Caption labels the legend.
	Caption string

	stops []colorful.Color
}

type options struct {
	lower, upper float64
	palette      []string
	caption      string
}

// Option configures Build.
type Option func(*options)

// WithPercentiles sets the percentiles used for the domain ends.
func WithPercentiles(lower, upper float64) Option {
	return func(o *options) {
		o.lower = lower
		o.upper = upper
	}
}

// WithPalette replaces the OrRd palette.
func WithPalette(colors ...string) Option {
	return func(o *options) {
		o.palette = colors
	}
}

// WithCaption sets the legend caption.
func WithCaption(caption string) Option {
	return func(o *options) {
		o.caption = caption
	}
}

// Build derives a Scale from values. The domain ends are the configured
// percentiles truncated to integers.
func Build(values []float64, opts ...Option) (*Scale, error) {
	o := options{
		lower:   DefaultLowerPercentile,
		upper:   DefaultUpperPercentile,
		palette: OrRd,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if len(values) == 0 {
		return nil, ErrNoValues
	}
	if o.lower > o.upper {
		return nil, fmt.Errorf("%w: lower %v is above upper %v", ErrInvalidPercentile, o.lower, o.upper)
	}

	lo, err := Percentile(values, o.lower)
	if err != nil {
		return nil, err
	}
	hi, err := Percentile(values, o.upper)
	if err != nil {
		return nil, err
	}

	return New(math.Trunc(lo), math.Trunc(hi), o.caption, o.palette...)
}

// New creates a Scale with an explicit domain.
func New(minValue, maxValue float64, caption string, palette ...string) (*Scale, error) {
	if len(palette) == 0 {
		palette = OrRd
	}
	if len(palette) < 2 {
		return nil, ErrInvalidPalette
	}
	if !isFinite(minValue) || !isFinite(maxValue) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidDomain, minValue, maxValue)
	}

	stops := make([]colorful.Color, len(palette))
	for i, hex := range palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPalette, hex)
		}
		stops[i] = c
	}

	return &Scale{
		Min:     minValue,
		Max:     maxValue,
		Palette: palette,
		Caption: caption,
		stops:   stops,
	}, nil
}

// Color returns the hex colour for v.
func (s *Scale) Color(v float64) string {
	last := len(s.stops) - 1
	if math.IsNaN(v) || !isFinite(s.Min) || !isFinite(s.Max) || v <= s.Min {
		return s.stops[0].Hex()
	}
	if v >= s.Max {
		return s.stops[last].Hex()
	}

	pos := (v - s.Min) / (s.Max - s.Min) * float64(last)
	i := int(math.Floor(pos))
	if i < 0 {
		return s.stops[0].Hex()
	}
	if i >= last {
		return s.stops[last].Hex()
	}
	return s.stops[i].BlendRgb(s.stops[i+1], pos-float64(i)).Clamped().Hex()
}

// Ticks returns n evenly spaced values from Min to Max, both included.
func (s *Scale) Ticks(n int) []float64 {
	if n < 2 {
		return []float64{s.Min}
	}
	ticks := make([]float64, n)
	step := (s.Max - s.Min) / float64(n-1)
	for i := range ticks {
		ticks[i] = s.Min + step*float64(i)
	}
	ticks[n-1] = s.Max
	return ticks
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
