package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/nao1215/homeheat/internal/model"
)

// testSnapshot builds the three-record scenario snapshot.
func testSnapshot() *model.Snapshot {
	g := model.NewGraph()
	g.Add(model.Record{ID: "1", Latitude: 33.75, Longitude: -84.39, Value: 100000})
	g.Add(model.Record{ID: "2", Latitude: 33.70, Longitude: -84.30, Value: 215000.5})
	g.AddEdge("1", "2")
	g.AddEdge("1", "3")
	g.AddEdge("2", "1")
	g.AddEdge("2", "1")

	return &model.Snapshot{
		Metadata: model.Metadata{
			RunID:         "3f2504e0-4f89-11d3-9a0c-0305e82c3301",
			CreatedAt:     time.Date(2024, 5, 1, 12, 30, 0, 123456789, time.UTC),
			Query:         model.Query{Address: "Atlanta", City: "Atlanta", State: "GA"},
			Bounds:        model.Bounds{MinLat: 33.6, MaxLat: 33.9, MinLon: -84.5, MaxLon: -84.2},
			MaxSize:       10000,
			MaxIterations: 0,
			Reason:        model.ReasonFrontierExhausted,
			Iterations:    2,
			SeedCount:     1,
		},
		Graph: g,
	}
}

func TestWriteRead(t *testing.T) {
	t.Parallel()

	t.Run("round trip keeps the snapshot", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data", "data.db")
		want := testSnapshot()

		if err := Write(context.Background(), path, want); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		got, err := Read(context.Background(), path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}

		if !reflect.DeepEqual(got, want) {
			t.Errorf("round trip mismatch:\nexpected %+v\ngot      %+v", want, got)
		}
	})

	t.Run("empty graph round trips", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.db")
		want := testSnapshot()
		want.Graph = model.NewGraph()

		if err := Write(context.Background(), path, want); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		got, err := Read(context.Background(), path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if got.Graph.Len() != 0 {
			t.Errorf("expected empty graph, got %d records", got.Graph.Len())
		}
	})

	t.Run("second write replaces the first", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "data.db")
		first := testSnapshot()
		if err := Write(context.Background(), path, first); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		second := testSnapshot()
		second.Graph = model.NewGraph()
		second.Graph.Add(model.Record{ID: "9", Latitude: 33.8, Longitude: -84.4, Value: 1})
		second.Metadata.Reason = model.ReasonSizeTarget
		if err := Write(context.Background(), path, second); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		got, err := Read(context.Background(), path)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if !reflect.DeepEqual(got, second) {
			t.Errorf("expected the second snapshot, got %+v", got)
		}
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()

		err := Write(context.Background(), filepath.Join(t.TempDir(), "x.db"), nil)
		if !errors.Is(err, ErrNilSnapshot) {
			t.Errorf("expected ErrNilSnapshot, got %v", err)
		}
	})
}

func TestReadErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Read(context.Background(), filepath.Join(t.TempDir(), "absent.db"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("not a database", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "garbage.db")
		if err := os.WriteFile(path, []byte("this is definitely not sqlite, just some text padding it out"), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := Read(context.Background(), path)
		if !errors.Is(err, ErrCorrupt) {
			t.Errorf("expected ErrCorrupt, got %v", err)
		}
	})

	tamper := func(t *testing.T, stmt string) error {
		t.Helper()

		path := filepath.Join(t.TempDir(), "data.db")
		if err := Write(context.Background(), path, testSnapshot()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		db, err := sql.Open("sqlite", path)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("tamper failed: %v", err)
		}
		_ = db.Close()

		_, err = Read(context.Background(), path)
		return err
	}

	tests := []struct {
		name string
		stmt string
	}{
		{name: "missing metadata row", stmt: "DELETE FROM snapshot_meta"},
		{name: "changed value", stmt: "UPDATE records SET value = 1 WHERE id = '1'"},
		{name: "deleted record", stmt: "DELETE FROM records WHERE id = '2'"},
		{name: "dangling edge", stmt: "INSERT INTO edges (from_id, position, to_id) VALUES ('ghost', 0, '1')"},
		{name: "unknown reason", stmt: "UPDATE snapshot_meta SET reason = 'bored'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tamper(t, tt.stmt); !errors.Is(err, ErrCorrupt) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestDigest(t *testing.T) {
	t.Parallel()

	a := Digest(testSnapshot())
	b := Digest(testSnapshot())
	if a != b {
		t.Errorf("expected identical digests, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(a))
	}

	changed := testSnapshot()
	changed.Graph.AddEdge("2", "4")
	if Digest(changed) == a {
		t.Error("expected a different digest after adding an edge")
	}
}
