package render

import (
	"io"

	"github.com/nao1215/homeheat/internal/model"
)

// Heatmap defaults.
const (
	DefaultRadius      = 10
	DefaultHeatmapZoom = 11
)

// HeatmapRenderer draws a weighted point heatmap centred on the mean
// coordinate of the records.
type HeatmapRenderer struct {
	radius      int
	blur        int
	zoom        int
	max         float64
	tileURL     string
	attribution string
	title       string
}

// HeatmapOption configures a HeatmapRenderer.
type HeatmapOption func(*HeatmapRenderer)

// WithRadius sets the point radius in pixels.
func WithRadius(radius int) HeatmapOption {
	return func(r *HeatmapRenderer) {
		r.radius = radius
	}
}

// WithBlur sets the blur in pixels. It defaults to twice the radius.
func WithBlur(blur int) HeatmapOption {
	return func(r *HeatmapRenderer) {
		r.blur = blur
	}
}

// WithZoom sets the initial zoom level.
func WithZoom(zoom int) HeatmapOption {
	return func(r *HeatmapRenderer) {
		r.zoom = zoom
	}
}

// WithMaxIntensity sets the value that maps to full intensity.
// It defaults to the largest value in the graph.
func WithMaxIntensity(v float64) HeatmapOption {
	return func(r *HeatmapRenderer) {
		r.max = v
	}
}

// WithTileURL sets the tile layer URL template and its attribution.
func WithTileURL(url, attribution string) HeatmapOption {
	return func(r *HeatmapRenderer) {
		r.tileURL = url
		r.attribution = attribution
	}
}

// WithTitle sets the document title.
func WithTitle(title string) HeatmapOption {
	return func(r *HeatmapRenderer) {
		r.title = title
	}
}

// NewHeatmapRenderer creates a HeatmapRenderer.
func NewHeatmapRenderer(opts ...HeatmapOption) *HeatmapRenderer {
	r := &HeatmapRenderer{
		radius:      DefaultRadius,
		zoom:        DefaultHeatmapZoom,
		tileURL:     DefaultTileURL,
		attribution: DefaultAttribution,
		title:       "homeheat",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.radius <= 0 {
		r.radius = DefaultRadius
	}
	if r.blur <= 0 {
		r.blur = 2 * r.radius
	}
	return r
}

type heatmapData struct {
	Title       string
	LeafletCSS  string
	LeafletJS   string
	HeatJS      string
	TileURL     string
	Attribution string
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	Radius      int
	Blur        int
	Max         float64
	Points      [][3]float64
	PointCount  int
}

// Render writes the heatmap document for g to w.
func (r *HeatmapRenderer) Render(w io.Writer, g *model.Graph) error {
	if g == nil || g.Len() == 0 {
		return ErrNoPoints
	}

	lat, lon, _ := g.Center()
	points := g.HeatPoints()

	maxIntensity := r.max
	if maxIntensity <= 0 {
		for _, p := range points {
			if p[2] > maxIntensity {
				maxIntensity = p[2]
			}
		}
		if maxIntensity <= 0 {
			maxIntensity = 1
		}
	}

	return execute(w, "heatmap.html.tmpl", heatmapData{
		Title:       r.title,
		LeafletCSS:  leafletCSS,
		LeafletJS:   leafletJS,
		HeatJS:      heatJS,
		TileURL:     r.tileURL,
		Attribution: r.attribution,
		CenterLat:   lat,
		CenterLon:   lon,
		Zoom:        r.zoom,
		Radius:      r.radius,
		Blur:        r.blur,
		Max:         maxIntensity,
		Points:      points,
		PointCount:  len(points),
	})
}
