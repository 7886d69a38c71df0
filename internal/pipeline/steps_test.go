package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/homeheat/internal/boundary"
	"github.com/nao1215/homeheat/internal/colorscale"
	"github.com/nao1215/homeheat/internal/config"
	"github.com/nao1215/homeheat/internal/crawler"
	"github.com/nao1215/homeheat/internal/model"
	"github.com/nao1215/homeheat/internal/snapshot"
	"github.com/nao1215/homeheat/internal/statecsv"
)

// fakeClient answers the search with fixed seeds and the comparables
// requests from a fixed adjacency table.
type fakeClient struct {
	seeds     []model.Record
	records   map[string]model.Record
	neighbors map[string][]string
	searchErr error

	address      string
	cityStateZip string
}

func (f *fakeClient) SearchResults(_ context.Context, address, cityStateZip string) ([]model.Record, error) {
	f.address = address
	f.cityStateZip = cityStateZip
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.seeds, nil
}

func (f *fakeClient) Comps(_ context.Context, id string) ([]model.Record, error) {
	out := make([]model.Record, 0, len(f.neighbors[id]))
	for _, n := range f.neighbors[id] {
		out = append(out, f.records[n])
	}
	return out, nil
}

// scenarioClient seeds record 1, whose comparables are 2 (inside the Atlanta
// bounds) and 3 (north of them).
func scenarioClient() *fakeClient {
	records := map[string]model.Record{
		"1": {ID: "1", Latitude: 33.75, Longitude: -84.39, Value: 100},
		"2": {ID: "2", Latitude: 33.70, Longitude: -84.30, Value: 200},
		"3": {ID: "3", Latitude: 34.10, Longitude: -84.30, Value: 300},
	}
	return &fakeClient{
		seeds:     []model.Record{records["1"]},
		records:   records,
		neighbors: map[string][]string{"1": {"2", "3"}},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "CA", "properties": {"name": "California"},
     "geometry": {"type": "Polygon", "coordinates": [[[-124, 42], [-114, 42], [-114, 32], [-124, 42]]]}},
    {"type": "Feature", "id": "TX", "properties": {"name": "Texas"},
     "geometry": {"type": "Polygon", "coordinates": [[[-106, 36], [-94, 36], [-94, 26], [-106, 36]]]}}
  ]
}`

const testCSV = "RegionName,State,2017-10,2017-11\n" +
	"California,CA,440,450\n" +
	"Texas,TX,140,150\n" +
	"Georgia,GA,120,\"1,200\"\n"

func writeTestCSV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "states.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0600); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	return path
}

func geoJSONServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testGeoJSON))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSeedStep(t *testing.T) {
	t.Parallel()

	t.Run("stores seeds", func(t *testing.T) {
		t.Parallel()

		client := scenarioClient()
		run := &Run{Query: model.Query{Address: "Atlanta", City: "Atlanta", State: "GA"}}

		if err := NewSeedStep(client, quietLogger()).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(run.Seeds) != 1 || run.Seeds[0].ID != "1" {
			t.Errorf("expected seed 1, got %v", run.Seeds)
		}
		if client.address != "Atlanta" {
			t.Errorf("expected address Atlanta, got %q", client.address)
		}
		if client.cityStateZip != "Atlanta+GA" {
			t.Errorf("expected citystatezip Atlanta+GA, got %q", client.cityStateZip)
		}
	})

	t.Run("fails without results", func(t *testing.T) {
		t.Parallel()

		client := &fakeClient{}
		err := NewSeedStep(client, nil).Do(context.Background(), &Run{})
		if !errors.Is(err, crawler.ErrNoSeeds) {
			t.Errorf("expected ErrNoSeeds, got %v", err)
		}
	})

	t.Run("wraps search errors", func(t *testing.T) {
		t.Parallel()

		searchErr := errors.New("boom")
		client := &fakeClient{searchErr: searchErr}
		err := NewSeedStep(client, nil).Do(context.Background(), &Run{})
		if !errors.Is(err, searchErr) {
			t.Errorf("expected wrapped search error, got %v", err)
		}
	})

	t.Run("name", func(t *testing.T) {
		t.Parallel()

		if got := NewSeedStep(&fakeClient{}, nil).Name(); got != "seed" {
			t.Errorf("expected name seed, got %q", got)
		}
	})
}

func TestCrawlStep(t *testing.T) {
	t.Parallel()

	t.Run("crawls from seeds", func(t *testing.T) {
		t.Parallel()

		client := scenarioClient()
		c := crawler.NewCrawler(client,
			crawler.WithAdmit(config.DefaultBounds.Admits),
			crawler.WithLogger(quietLogger()),
		)
		run := &Run{Seeds: client.seeds}

		if err := NewCrawlStep(c).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run.Result == nil {
			t.Fatal("expected a crawl result")
		}
		if run.Result.Reason != model.ReasonFrontierExhausted {
			t.Errorf("expected %s, got %s", model.ReasonFrontierExhausted, run.Result.Reason)
		}
		if got := run.Result.Graph.Order; !reflect.DeepEqual(got, []string{"1", "2"}) {
			t.Errorf("expected records [1 2], got %v", got)
		}
	})

	t.Run("requires seeds", func(t *testing.T) {
		t.Parallel()

		c := crawler.NewCrawler(scenarioClient())
		err := NewCrawlStep(c).Do(context.Background(), &Run{})
		if !errors.Is(err, crawler.ErrNoSeeds) {
			t.Errorf("expected ErrNoSeeds, got %v", err)
		}
	})
}

func TestSnapshotSteps(t *testing.T) {
	t.Parallel()

	t.Run("saves and loads", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data", "data.db")
		created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

		g := model.NewGraph()
		g.Add(model.Record{ID: "1", Latitude: 33.75, Longitude: -84.39, Value: 100})
		g.Add(model.Record{ID: "2", Latitude: 33.70, Longitude: -84.30, Value: 200})
		g.AddEdge("1", "2")
		g.AddEdge("1", "3")

		run := &Run{
			Query:   model.Query{City: "Atlanta", State: "GA"},
			Bounds:  config.DefaultBounds,
			MaxSize: 10,
			Result: &crawler.Result{
				Graph:      g,
				Reason:     model.ReasonFrontierExhausted,
				Iterations: 2,
				SeedCount:  1,
			},
		}

		save := NewSaveSnapshotStep(path,
			WithClock(func() time.Time { return created }),
			WithRunID(func() string { return "run-1" }),
		)
		if err := save.Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(run.Outputs) != 1 || run.Outputs[0] != path {
			t.Errorf("expected outputs [%s], got %v", path, run.Outputs)
		}

		loaded := &Run{}
		if err := NewLoadSnapshotStep(path).Do(context.Background(), loaded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		meta := loaded.Snapshot.Metadata
		if meta.RunID != "run-1" {
			t.Errorf("expected run id run-1, got %q", meta.RunID)
		}
		if !meta.CreatedAt.Equal(created) {
			t.Errorf("expected created %v, got %v", created, meta.CreatedAt)
		}
		if meta.Reason != model.ReasonFrontierExhausted {
			t.Errorf("expected %s, got %s", model.ReasonFrontierExhausted, meta.Reason)
		}
		if loaded.Query != run.Query {
			t.Errorf("expected query %v, got %v", run.Query, loaded.Query)
		}
		if !reflect.DeepEqual(loaded.Snapshot.Graph, g) {
			t.Errorf("expected graph %+v, got %+v", g, loaded.Snapshot.Graph)
		}
	})

	t.Run("generates uuid run ids", func(t *testing.T) {
		t.Parallel()

		run := &Run{Result: &crawler.Result{Graph: model.NewGraph(), Reason: model.ReasonSizeTarget}}
		path := filepath.Join(t.TempDir(), "data.db")

		if err := NewSaveSnapshotStep(path).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := uuid.Parse(run.Snapshot.Metadata.RunID); err != nil {
			t.Errorf("expected a uuid run id, got %q: %v", run.Snapshot.Metadata.RunID, err)
		}
	})

	t.Run("save requires a crawl result", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.db")
		err := NewSaveSnapshotStep(path).Do(context.Background(), &Run{})
		if !errors.Is(err, ErrMissingInput) {
			t.Errorf("expected ErrMissingInput, got %v", err)
		}
	})

	t.Run("load reports a missing snapshot", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.db")
		err := NewLoadSnapshotStep(path).Do(context.Background(), &Run{})
		if !errors.Is(err, snapshot.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestHeatmapStep(t *testing.T) {
	t.Parallel()

	t.Run("writes the heatmap", func(t *testing.T) {
		t.Parallel()

		g := model.NewGraph()
		g.Add(model.Record{ID: "1", Latitude: 33.75, Longitude: -84.39, Value: 100})
		run := &Run{Snapshot: &model.Snapshot{Graph: g}}
		output := filepath.Join(t.TempDir(), "out", "heatmap.html")

		if err := NewHeatmapStep(output).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(data), "leaflet") {
			t.Error("expected a leaflet document")
		}
		if len(run.Outputs) != 1 || run.Outputs[0] != output {
			t.Errorf("expected outputs [%s], got %v", output, run.Outputs)
		}
	})

	t.Run("requires a snapshot", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "heatmap.html")
		err := NewHeatmapStep(output).Do(context.Background(), &Run{})
		if !errors.Is(err, ErrMissingInput) {
			t.Errorf("expected ErrMissingInput, got %v", err)
		}
		if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
			t.Error("expected no output file")
		}
	})
}

func TestLoadCSVStep(t *testing.T) {
	t.Parallel()

	t.Run("loads the table", func(t *testing.T) {
		t.Parallel()

		run := &Run{}
		if err := NewLoadCSVStep(writeTestCSV(t), quietLogger()).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run.Table.MetricColumn != "2017-11" {
			t.Errorf("expected metric column 2017-11, got %q", run.Table.MetricColumn)
		}
		if got := run.Table.ByState()["GA"]; got != 1200 {
			t.Errorf("expected GA 1200, got %v", got)
		}
	})

	t.Run("wraps loader errors", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.csv")
		err := NewLoadCSVStep(path, nil).Do(context.Background(), &Run{})
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "missing.csv") {
			t.Errorf("expected the path in the error, got %v", err)
		}
	})
}

func TestBoundaryStep(t *testing.T) {
	t.Parallel()

	srv := geoJSONServer(t, nil)
	fetcher := &boundary.Fetcher{
		URL:       srv.URL,
		CachePath: filepath.Join(t.TempDir(), "us-states.json"),
		Logger:    quietLogger(),
	}

	run := &Run{}
	if err := NewBoundaryStep(fetcher).Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := run.Boundaries.IDs(); !reflect.DeepEqual(got, []string{"CA", "TX"}) {
		t.Errorf("expected ids [CA TX], got %v", got)
	}
}

func TestColorScaleStep(t *testing.T) {
	t.Parallel()

	t.Run("builds the scale", func(t *testing.T) {
		t.Parallel()

		run := &Run{Table: &statecsv.Table{Rows: []model.StateValue{
			{State: "CA", Value: 450},
			{State: "TX", Value: 150},
		}}}

		step := NewColorScaleStep(colorscale.WithPercentiles(0, 100), colorscale.WithCaption("price"))
		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run.Scale.Min != 150 || run.Scale.Max != 450 {
			t.Errorf("expected domain [150, 450], got [%v, %v]", run.Scale.Min, run.Scale.Max)
		}
		if run.Scale.Caption != "price" {
			t.Errorf("expected caption price, got %q", run.Scale.Caption)
		}
	})

	t.Run("requires the table", func(t *testing.T) {
		t.Parallel()

		err := NewColorScaleStep().Do(context.Background(), &Run{})
		if !errors.Is(err, ErrMissingInput) {
			t.Errorf("expected ErrMissingInput, got %v", err)
		}
	})
}

func TestChoroplethStep(t *testing.T) {
	t.Parallel()

	t.Run("writes the choropleth", func(t *testing.T) {
		t.Parallel()

		fc, err := boundary.Decode([]byte(testGeoJSON))
		if err != nil {
			t.Fatalf("failed to decode: %v", err)
		}
		scale, err := colorscale.New(100, 500, "price")
		if err != nil {
			t.Fatalf("failed to build scale: %v", err)
		}
		run := &Run{
			Table:      &statecsv.Table{Rows: []model.StateValue{{State: "CA", Value: 450}}},
			Boundaries: fc,
			Scale:      scale,
		}
		output := filepath.Join(t.TempDir(), "choropleth.html")

		if err := NewChoroplethStep(output).Do(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := os.ReadFile(output)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if !strings.Contains(string(data), "price") {
			t.Error("expected the caption in the document")
		}
	})

	t.Run("requires every input", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "choropleth.html")
		err := NewChoroplethStep(output).Do(context.Background(), &Run{Table: &statecsv.Table{}})
		if !errors.Is(err, ErrMissingInput) {
			t.Errorf("expected ErrMissingInput, got %v", err)
		}
	})
}
