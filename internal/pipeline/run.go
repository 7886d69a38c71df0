package pipeline

import (
	"github.com/nao1215/homeheat/internal/boundary"
	"github.com/nao1215/homeheat/internal/colorscale"
	"github.com/nao1215/homeheat/internal/config"
	"github.com/nao1215/homeheat/internal/crawler"
	"github.com/nao1215/homeheat/internal/model"
	"github.com/nao1215/homeheat/internal/statecsv"
)

// Run is the state passed from step to step.
type Run struct {
	// Query is the seed search.
	Query model.Query

	// Bounds, MaxSize and MaxIterations are recorded in the snapshot metadata.
	Bounds        model.Bounds
	MaxSize       int
	MaxIterations int

	// Seeds are the records returned by the search.
	Seeds []model.Record

	// Result is the outcome of the crawl.
	Result *crawler.Result

	// Snapshot is the persisted crawl, either just written or loaded.
	Snapshot *model.Snapshot

	// Table holds the per-state CSV rows.
	Table *statecsv.Table

	// Boundaries is the state outline document.
	Boundaries *boundary.FeatureCollection

	// Scale maps per-state values to fill colours.
	Scale *colorscale.Scale

	// Outputs lists the files written by the run.
	Outputs []string

	// PerformedSteps lists the steps that were executed, in order.
	PerformedSteps []string

	// Error is the last step error.
	Error        error
	ErrorMessage string

	// Cancelled is set when the context ended before all steps ran.
	Cancelled bool
}

// NewRun creates a Run for the search and crawl limits in cfg.
func NewRun(cfg *config.Config) *Run {
	return &Run{
		Query:         cfg.Query(),
		Bounds:        cfg.Bounds,
		MaxSize:       cfg.MaxSize,
		MaxIterations: cfg.MaxIterations,
	}
}

// addOutput records a written file.
func (r *Run) addOutput(path string) {
	r.Outputs = append(r.Outputs, path)
}
