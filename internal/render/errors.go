package render

import "errors"

var (
	// ErrNoPoints is returned when a heatmap is requested for an empty graph.
	ErrNoPoints = errors.New("no records to draw: the heatmap needs at least one point")

	// ErrNoFeatures is returned when the boundary document has no features.
	ErrNoFeatures = errors.New("boundary document has no features")

	// ErrNilScale is returned when a choropleth is requested without a colour scale.
	ErrNilScale = errors.New("choropleth needs a colour scale")
)
