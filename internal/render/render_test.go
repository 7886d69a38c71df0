package render

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/homeheat/internal/boundary"
	"github.com/nao1215/homeheat/internal/colorscale"
	"github.com/nao1215/homeheat/internal/model"
)

func testGraph() *model.Graph {
	g := model.NewGraph()
	g.Add(model.Record{ID: "1", Latitude: 33.70, Longitude: -84.40, Value: 100000})
	g.Add(model.Record{ID: "2", Latitude: 33.80, Longitude: -84.30, Value: 300000})
	return g
}

func parse(t *testing.T, buf *bytes.Buffer) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(buf)
	if err != nil {
		t.Fatalf("failed to parse output: %v", err)
	}
	return doc
}

// scriptText returns the inline scripts with all whitespace removed.
func scriptText(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		sb.WriteString(s.Text())
	})
	return strings.Join(strings.Fields(sb.String()), "")
}

func TestHeatmapRenderer(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewHeatmapRenderer(WithTitle("Atlanta")).Render(&buf, testGraph()); err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		doc := parse(t, &buf)
		if got := doc.Find("title").Text(); got != "Atlanta" {
			t.Errorf("expected title Atlanta, got %q", got)
		}
		if got, _ := doc.Find("#map").Attr("data-points"); got != "2" {
			t.Errorf("expected 2 points, got %q", got)
		}

		script := scriptText(doc)
		for _, want := range []string{
			"L.heatLayer(",
			"radius:10",
			"blur:20",
			"zoom:11",
			"max:300000",
			"center:[33.7",
			"[33.7,-84.4,100000]",
			"L.control.scale()",
		} {
			if !strings.Contains(script, want) {
				t.Errorf("expected script to contain %q", want)
			}
		}
	})

	t.Run("blur follows radius", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewHeatmapRenderer(WithRadius(15)).Render(&buf, testGraph()); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		script := scriptText(parse(t, &buf))
		if !strings.Contains(script, "radius:15") || !strings.Contains(script, "blur:30") {
			t.Errorf("expected radius 15 and blur 30 in %s", script)
		}
	})

	t.Run("empty graph", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := NewHeatmapRenderer().Render(&buf, model.NewGraph())
		if !errors.Is(err, ErrNoPoints) {
			t.Errorf("expected ErrNoPoints, got %v", err)
		}
		if buf.Len() != 0 {
			t.Error("expected nothing written")
		}
	})
}

func testStates(t *testing.T) *boundary.FeatureCollection {
	t.Helper()

	fc, err := boundary.Decode([]byte(`{"type":"FeatureCollection","features":[
{"type":"Feature","id":"AL","properties":{"name":"Alabama"},"geometry":{"type":"Point","coordinates":[-86.8,32.8]}},
{"type":"Feature","id":"GA","properties":{"name":"Georgia"},"geometry":{"type":"Point","coordinates":[-83.4,32.6]}},
{"type":"Feature","id":"WY","properties":{"name":"Wyoming"},"geometry":{"type":"Point","coordinates":[-107.5,43.0]}}
]}`))
	if err != nil {
		t.Fatal(err)
	}
	return fc
}

func TestChoroplethRenderer(t *testing.T) {
	t.Parallel()

	scale, err := colorscale.New(100, 400, "Zillow Median Price Per Square Foot", colorscale.OrRd...)
	if err != nil {
		t.Fatal(err)
	}
	values := map[string]float64{"AL": 90, "GA": 500}

	t.Run("document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := NewChoroplethRenderer().Render(&buf, testStates(t), scale, values); err != nil {
			t.Fatalf("Render() error = %v", err)
		}

		doc := parse(t, &buf)
		if got, _ := doc.Find("#map").Attr("data-features"); got != "3" {
			t.Errorf("expected 3 features, got %q", got)
		}
		if got := doc.Find("#legend .caption").Text(); got != "Zillow Median Price Per Square Foot" {
			t.Errorf("unexpected caption %q", got)
		}
		if got := doc.Find("#legend .swatch").Length(); got != 7 {
			t.Errorf("expected 7 swatches, got %d", got)
		}
		if got := doc.Find("#legend .tick").First().Text(); got != "100" {
			t.Errorf("expected first tick 100, got %q", got)
		}

		script := scriptText(doc)
		for _, want := range []string{
			"center:[37,-102]",
			"zoom:4",
			"weight:1",
			"fillOpacity:1",
			`"GA":"#990000"`,
			`"AL":"#fef0d9"`,
			`"WY":"#fef0d9"`,
			`"FeatureCollection"`,
		} {
			if !strings.Contains(script, want) {
				t.Errorf("expected script to contain %q", want)
			}
		}
	})

	t.Run("missing inputs", func(t *testing.T) {
		t.Parallel()

		r := NewChoroplethRenderer()
		if err := r.Render(io.Discard, &boundary.FeatureCollection{Type: "FeatureCollection"}, scale, values); !errors.Is(err, ErrNoFeatures) {
			t.Errorf("expected ErrNoFeatures, got %v", err)
		}
		if err := r.Render(io.Discard, testStates(t), nil, values); !errors.Is(err, ErrNilScale) {
			t.Errorf("expected ErrNilScale, got %v", err)
		}
	})
}

func TestFillColors(t *testing.T) {
	t.Parallel()

	scale, err := colorscale.New(10, 20, "")
	if err != nil {
		t.Fatal(err)
	}

	colors := FillColors(testStates(t), scale, map[string]float64{"GA": 20})
	if colors["GA"] != "#990000" {
		t.Errorf("expected GA at the top colour, got %s", colors["GA"])
	}
	if colors["WY"] != scale.Color(0) {
		t.Errorf("expected a missing state to use the colour of 0, got %s", colors["WY"])
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "atlanta_heatmap.html")
		err := WriteFile(path, func(w io.Writer) error {
			return NewHeatmapRenderer().Render(w, testGraph())
		})
		if err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(data, []byte("<!DOCTYPE html>")) {
			t.Error("expected an HTML document")
		}
	})

	t.Run("render failure writes nothing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.html")
		err := WriteFile(path, func(w io.Writer) error {
			return NewHeatmapRenderer().Render(w, model.NewGraph())
		})
		if !errors.Is(err, ErrNoPoints) {
			t.Errorf("expected ErrNoPoints, got %v", err)
		}
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Error("expected no file")
		}
	})
}
