package render

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/homeheat/internal/boundary"
	"github.com/nao1215/homeheat/internal/colorscale"
)

// Choropleth defaults.
const (
	DefaultChoroplethLat  = 37.0
	DefaultChoroplethLon  = -102.0
	DefaultChoroplethZoom = 4

	// DefaultLegendTicks is the number of labelled values on the legend.
	DefaultLegendTicks = 5
)

// ChoroplethRenderer fills each boundary feature with the colour of its value.
// Features without a value are coloured as if their value were 0.
type ChoroplethRenderer struct {
	lat, lon    float64
	zoom        int
	weight      float64
	fillOpacity float64
	ticks       int
	tileURL     string
	attribution string
	title       string
}

// ChoroplethOption configures a ChoroplethRenderer.
type ChoroplethOption func(*ChoroplethRenderer)

// WithCenter sets the initial map centre.
func WithCenter(lat, lon float64) ChoroplethOption {
	return func(r *ChoroplethRenderer) {
		r.lat = lat
		r.lon = lon
	}
}

// WithChoroplethZoom sets the initial zoom level.
func WithChoroplethZoom(zoom int) ChoroplethOption {
	return func(r *ChoroplethRenderer) {
		r.zoom = zoom
	}
}

// WithLegendTicks sets how many values the legend labels.
func WithLegendTicks(n int) ChoroplethOption {
	return func(r *ChoroplethRenderer) {
		r.ticks = n
	}
}

// WithChoroplethTitle sets the document title.
func WithChoroplethTitle(title string) ChoroplethOption {
	return func(r *ChoroplethRenderer) {
		r.title = title
	}
}

// NewChoroplethRenderer creates a ChoroplethRenderer centred on the
// contiguous United States.
func NewChoroplethRenderer(opts ...ChoroplethOption) *ChoroplethRenderer {
	r := &ChoroplethRenderer{
		lat:         DefaultChoroplethLat,
		lon:         DefaultChoroplethLon,
		zoom:        DefaultChoroplethZoom,
		weight:      1,
		fillOpacity: 1.0,
		ticks:       DefaultLegendTicks,
		tileURL:     DefaultTileURL,
		attribution: DefaultAttribution,
		title:       "homeheat",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type swatch struct {
	Color string
	Label string
}

type legendData struct {
	Caption  string
	Swatches []swatch
	Ticks    []string
}

type choroplethData struct {
	Title        string
	LeafletCSS   string
	LeafletJS    string
	TileURL      string
	Attribution  string
	CenterLat    float64
	CenterLon    float64
	Zoom         int
	Weight       float64
	FillOpacity  float64
	FillColors   map[string]string
	DefaultColor string
	GeoJSON      json.RawMessage
	FeatureCount int
	Legend       legendData
}

// FillColors returns the fill colour of every feature in fc.
func FillColors(fc *boundary.FeatureCollection, scale *colorscale.Scale, values map[string]float64) map[string]string {
	colors := make(map[string]string, len(fc.Features))
	for _, f := range fc.Features {
		colors[f.ID] = scale.Color(values[f.ID])
	}
	return colors
}

// Render writes the choropleth document to w.
func (r *ChoroplethRenderer) Render(w io.Writer, fc *boundary.FeatureCollection, scale *colorscale.Scale, values map[string]float64) error {
	if fc == nil || len(fc.Features) == 0 {
		return ErrNoFeatures
	}
	if scale == nil {
		return ErrNilScale
	}

	geo, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("failed to encode boundary document: %w", err)
	}

	return execute(w, "choropleth.html.tmpl", choroplethData{
		Title:        r.title,
		LeafletCSS:   leafletCSS,
		LeafletJS:    leafletJS,
		TileURL:      r.tileURL,
		Attribution:  r.attribution,
		CenterLat:    r.lat,
		CenterLon:    r.lon,
		Zoom:         r.zoom,
		Weight:       r.weight,
		FillOpacity:  r.fillOpacity,
		FillColors:   FillColors(fc, scale, values),
		DefaultColor: scale.Color(0),
		GeoJSON:      geo,
		FeatureCount: len(fc.Features),
		Legend:       r.legend(scale),
	})
}

// legend builds one swatch per palette stop and evenly spaced tick labels.
func (r *ChoroplethRenderer) legend(scale *colorscale.Scale) legendData {
	p := message.NewPrinter(language.AmericanEnglish)

	ticks := scale.Ticks(r.ticks)
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = p.Sprintf("%.0f", t)
	}

	swatches := make([]swatch, len(scale.Palette))
	step := 0.0
	if n := len(scale.Palette) - 1; n > 0 {
		step = (scale.Max - scale.Min) / float64(n)
	}
	for i, c := range scale.Palette {
		swatches[i] = swatch{Color: c, Label: p.Sprintf("%.0f", scale.Min+step*float64(i))}
	}

	return legendData{
		Caption:  scale.Caption,
		Swatches: swatches,
		Ticks:    labels,
	}
}
