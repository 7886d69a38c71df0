package report

import (
	"math"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/homeheat/internal/colorscale"
	"github.com/nao1215/homeheat/internal/model"
)

// ValueStats describes the spread of record valuations.
type ValueStats struct {
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Max    float64 `json:"max"`
}

// Summary is the condensed view of a snapshot.
type Summary struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	// Place is the title-cased "City, ST" of the seed search.
	Place string      `json:"place"`
	Query model.Query `json:"query"`

	Bounds        model.Bounds `json:"bounds"`
	MaxSize       int          `json:"max_size"`
	MaxIterations int          `json:"max_iterations"`

	Reason        model.TerminationReason `json:"reason"`
	ReasonMessage string                  `json:"reason_message"`
	Iterations    int                     `json:"iterations"`
	SeedCount     int                     `json:"seed_count"`

	// Records is the number of admitted records.
	Records int `json:"records"`

	// Expanded is the number of records whose expansion yielded neighbours.
	Expanded int `json:"expanded"`

	// Edges counts every recorded comparables edge, repeats included.
	Edges int `json:"edges"`

	// RejectedEdges counts edges pointing at records that were never admitted.
	RejectedEdges int `json:"rejected_edges"`

	Values ValueStats `json:"values"`

	// Extent is the smallest rectangle containing every admitted record.
	Extent model.Bounds `json:"extent"`
}

// AdmittedEdges returns the number of edges between admitted records.
func (s *Summary) AdmittedEdges() int {
	return s.Edges - s.RejectedEdges
}

// NewSummary computes the summary of snap.
func NewSummary(snap *model.Snapshot) *Summary {
	m := snap.Metadata
	g := snap.Graph
	if g == nil {
		g = model.NewGraph()
	}

	s := &Summary{
		RunID:         m.RunID,
		CreatedAt:     m.CreatedAt,
		Place:         place(m.Query),
		Query:         m.Query,
		Bounds:        m.Bounds,
		MaxSize:       m.MaxSize,
		MaxIterations: m.MaxIterations,
		Reason:        m.Reason,
		ReasonMessage: m.Reason.Message(),
		Iterations:    m.Iterations,
		SeedCount:     m.SeedCount,
		Records:       g.Len(),
		Expanded:      len(g.Adjacency),
		Edges:         g.EdgeCount(),
	}

	for _, targets := range g.Adjacency {
		for _, id := range targets {
			if !g.Has(id) {
				s.RejectedEdges++
			}
		}
	}

	records := g.RecordsInOrder()
	if len(records) == 0 {
		return s
	}

	values := make([]float64, len(records))
	extent := model.Bounds{
		MinLat: math.Inf(1), MaxLat: math.Inf(-1),
		MinLon: math.Inf(1), MaxLon: math.Inf(-1),
	}
	sum := 0.0
	for i, r := range records {
		values[i] = r.Value
		sum += r.Value
		extent.MinLat = math.Min(extent.MinLat, r.Latitude)
		extent.MaxLat = math.Max(extent.MaxLat, r.Latitude)
		extent.MinLon = math.Min(extent.MinLon, r.Longitude)
		extent.MaxLon = math.Max(extent.MaxLon, r.Longitude)
	}

	s.Extent = extent
	s.Values.Min, _ = colorscale.Percentile(values, 0)     //nolint:errcheck // values is non-empty
	s.Values.Median, _ = colorscale.Percentile(values, 50) //nolint:errcheck // values is non-empty
	s.Values.Max, _ = colorscale.Percentile(values, 100)   //nolint:errcheck // values is non-empty
	s.Values.Mean = sum / float64(len(values))

	return s
}

// place formats the query as "City, ST".
func place(q model.Query) string {
	city := cases.Title(language.English).String(q.City)
	switch {
	case city != "" && q.State != "":
		return city + ", " + q.State
	case city != "":
		return city
	default:
		return q.State
	}
}
