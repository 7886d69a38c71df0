package model

import "time"

// Query identifies the search that seeded a crawl.
type Query struct {
	// Address is the free-form address passed to the search endpoint.
	Address string `json:"address"`

	// City and State form the citystatezip parameter.
	City  string `json:"city"`
	State string `json:"state"`
}

// CityStateZip returns the "City+ST" form expected by the search endpoint.
func (q Query) CityStateZip() string {
	if q.State == "" {
		return q.City
	}
	if q.City == "" {
		return q.State
	}
	return q.City + "+" + q.State
}

// Metadata describes the crawl run that produced a snapshot.
type Metadata struct {
	RunID         string            `json:"run_id"`
	CreatedAt     time.Time         `json:"created_at"`
	Query         Query             `json:"query"`
	Bounds        Bounds            `json:"bounds"`
	MaxSize       int               `json:"max_size"`
	MaxIterations int               `json:"max_iterations"`
	Reason        TerminationReason `json:"reason"`
	Iterations    int               `json:"iterations"`
	SeedCount     int               `json:"seed_count"`
}

// Snapshot is the persisted handoff between the crawl and the renderers.
type Snapshot struct {
	Metadata Metadata `json:"metadata"`
	Graph    *Graph   `json:"graph"`
}
