package model

import "fmt"

// TerminationReason explains why a crawl stopped.
type TerminationReason string

const (
	// ReasonSizeTarget means the number of admitted records reached the size target.
	ReasonSizeTarget TerminationReason = "size-target-reached"

	// ReasonIterationCap means the iteration cap was reached.
	ReasonIterationCap TerminationReason = "iteration-cap-reached"

	// ReasonFrontierExhausted means there was nothing left to expand.
	ReasonFrontierExhausted TerminationReason = "frontier-exhausted"
)

// String implements fmt.Stringer.
func (r TerminationReason) String() string {
	return string(r)
}

// Message returns the human-readable sentence printed at the end of a crawl.
func (r TerminationReason) Message() string {
	switch r {
	case ReasonSizeTarget:
		return "Desired number of records reached"
	case ReasonIterationCap:
		return "Maximum number of iterations reached"
	case ReasonFrontierExhausted:
		return "All records traversed, dead end reached"
	default:
		return "Unknown termination reason"
	}
}

// ParseTerminationReason converts a stored string back into a TerminationReason.
func ParseTerminationReason(s string) (TerminationReason, error) {
	switch r := TerminationReason(s); r {
	case ReasonSizeTarget, ReasonIterationCap, ReasonFrontierExhausted:
		return r, nil
	default:
		return "", fmt.Errorf("unknown termination reason %q", s)
	}
}

// Graph is the outcome of a comparables crawl.
//
// Records is the ResultIndex: every admitted record keyed by ID.
// Order lists the IDs in admission order so that output built from the
// graph is deterministic. Adjacency is the comparables relation as it was
// seen during expansion, including neighbours that were rejected by the
// admission filter and repeated edges.
type Graph struct {
	Records   map[string]Record   `json:"records"`
	Order     []string            `json:"order"`
	Adjacency map[string][]string `json:"adjacency"`
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Records:   make(map[string]Record),
		Order:     make([]string, 0),
		Adjacency: make(map[string][]string),
	}
}

// Add admits r if its ID is not present yet and reports whether it was added.
func (g *Graph) Add(r Record) bool {
	if _, ok := g.Records[r.ID]; ok {
		return false
	}
	g.Records[r.ID] = r
	g.Order = append(g.Order, r.ID)
	return true
}

// Has reports whether id has been admitted.
func (g *Graph) Has(id string) bool {
	_, ok := g.Records[id]
	return ok
}

// AddEdge appends to to the neighbour list of from.
func (g *Graph) AddEdge(from, to string) {
	g.Adjacency[from] = append(g.Adjacency[from], to)
}

// Len returns the number of admitted records.
func (g *Graph) Len() int {
	return len(g.Records)
}

// EdgeCount returns the number of recorded edges, counting repeats.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, to := range g.Adjacency {
		n += len(to)
	}
	return n
}

// RecordsInOrder returns the admitted records in admission order.
func (g *Graph) RecordsInOrder() []Record {
	out := make([]Record, 0, len(g.Order))
	for _, id := range g.Order {
		if r, ok := g.Records[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// HeatPoints returns one [lat, lon, value] row per record in admission order.
func (g *Graph) HeatPoints() [][3]float64 {
	records := g.RecordsInOrder()
	points := make([][3]float64, len(records))
	for i, r := range records {
		points[i] = [3]float64{r.Latitude, r.Longitude, r.Value}
	}
	return points
}

// Center returns the mean coordinate of all records, summed in admission
// order so repeated calls give identical results.
// ok is false for an empty graph.
func (g *Graph) Center() (lat, lon float64, ok bool) {
	records := g.RecordsInOrder()
	if len(records) == 0 {
		return 0, 0, false
	}
	for _, r := range records {
		lat += r.Latitude
		lon += r.Longitude
	}
	n := float64(len(records))
	return lat / n, lon / n, true
}
