package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/homeheat/internal/crawler"
	"github.com/nao1215/homeheat/internal/model"
	"github.com/nao1215/homeheat/internal/render"
	"github.com/nao1215/homeheat/internal/snapshot"
)

// Searcher finds the records matching an address search.
type Searcher interface {
	SearchResults(ctx context.Context, address, cityStateZip string) ([]model.Record, error)
}

// Client is what the crawl workflow needs from the listing API.
type Client interface {
	Searcher
	crawler.Source
}

// SeedStep runs the address search and stores the seeds.
type SeedStep struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewSeedStep creates a SeedStep.
func NewSeedStep(searcher Searcher, logger *slog.Logger) *SeedStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SeedStep{searcher: searcher, logger: logger}
}

// Name returns the step name.
func (s *SeedStep) Name() string {
	return "seed"
}

// Do executes the search. Zero results fail with crawler.ErrNoSeeds.
func (s *SeedStep) Do(ctx context.Context, run *Run) error {
	seeds, err := s.searcher.SearchResults(ctx, run.Query.Address, run.Query.CityStateZip())
	if err != nil {
		return fmt.Errorf("failed to search seeds: %w", err)
	}
	if len(seeds) == 0 {
		return fmt.Errorf("%w: search for %q in %q returned nothing",
			crawler.ErrNoSeeds, run.Query.Address, run.Query.CityStateZip())
	}

	s.logger.Info("seeds found", "count", len(seeds))
	run.Seeds = seeds
	return nil
}

// CrawlStep expands the seeds.
type CrawlStep struct {
	crawler *crawler.Crawler
}

// NewCrawlStep creates a CrawlStep around c.
func NewCrawlStep(c *crawler.Crawler) *CrawlStep {
	return &CrawlStep{crawler: c}
}

// Name returns the step name.
func (s *CrawlStep) Name() string {
	return "crawl"
}

// Do executes the crawl.
func (s *CrawlStep) Do(ctx context.Context, run *Run) error {
	if len(run.Seeds) == 0 {
		return crawler.ErrNoSeeds
	}

	result, err := s.crawler.Crawl(ctx, run.Seeds)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	run.Result = result
	return nil
}

// SaveSnapshotStep persists the crawl result.
type SaveSnapshotStep struct {
	path  string
	now   func() time.Time
	newID func() string
}

// SaveSnapshotStepOption configures a SaveSnapshotStep.
type SaveSnapshotStepOption func(*SaveSnapshotStep)

// WithClock sets the time source for the snapshot creation time.
func WithClock(now func() time.Time) SaveSnapshotStepOption {
	return func(s *SaveSnapshotStep) {
		s.now = now
	}
}

// WithRunID sets the run id generator.
func WithRunID(newID func() string) SaveSnapshotStepOption {
	return func(s *SaveSnapshotStep) {
		s.newID = newID
	}
}

// NewSaveSnapshotStep creates a step writing the snapshot file at path.
func NewSaveSnapshotStep(path string, opts ...SaveSnapshotStepOption) *SaveSnapshotStep {
	s := &SaveSnapshotStep{
		path:  path,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *SaveSnapshotStep) Name() string {
	return "save_snapshot"
}

// Do writes run.Result and stores the snapshot in run.
func (s *SaveSnapshotStep) Do(ctx context.Context, run *Run) error {
	if run.Result == nil {
		return fmt.Errorf("%w: %s needs a crawl result", ErrMissingInput, s.Name())
	}

	snap := &model.Snapshot{
		Metadata: model.Metadata{
			RunID:         s.newID(),
			CreatedAt:     s.now().UTC(),
			Query:         run.Query,
			Bounds:        run.Bounds,
			MaxSize:       run.MaxSize,
			MaxIterations: run.MaxIterations,
			Reason:        run.Result.Reason,
			Iterations:    run.Result.Iterations,
			SeedCount:     run.Result.SeedCount,
		},
		Graph: run.Result.Graph,
	}

	if err := snapshot.Write(ctx, s.path, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	run.Snapshot = snap
	run.addOutput(s.path)
	return nil
}

// LoadSnapshotStep reads a snapshot written by an earlier crawl.
type LoadSnapshotStep struct {
	path string
}

// NewLoadSnapshotStep creates a step reading the snapshot file at path.
func NewLoadSnapshotStep(path string) *LoadSnapshotStep {
	return &LoadSnapshotStep{path: path}
}

// Name returns the step name.
func (s *LoadSnapshotStep) Name() string {
	return "load_snapshot"
}

// Do loads the snapshot into run.
func (s *LoadSnapshotStep) Do(ctx context.Context, run *Run) error {
	snap, err := snapshot.Read(ctx, s.path)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	run.Snapshot = snap
	run.Query = snap.Metadata.Query
	run.Bounds = snap.Metadata.Bounds
	run.MaxSize = snap.Metadata.MaxSize
	run.MaxIterations = snap.Metadata.MaxIterations
	return nil
}

// HeatmapStep renders the snapshot records as a heatmap file.
type HeatmapStep struct {
	output string
	opts   []render.HeatmapOption
}

// NewHeatmapStep creates a step writing the heatmap to output.
func NewHeatmapStep(output string, opts ...render.HeatmapOption) *HeatmapStep {
	return &HeatmapStep{output: output, opts: opts}
}

// Name returns the step name.
func (s *HeatmapStep) Name() string {
	return "heatmap"
}

// Do renders and writes the heatmap.
func (s *HeatmapStep) Do(_ context.Context, run *Run) error {
	if run.Snapshot == nil {
		return fmt.Errorf("%w: %s needs a snapshot", ErrMissingInput, s.Name())
	}

	renderer := render.NewHeatmapRenderer(s.opts...)
	err := render.WriteFile(s.output, func(w io.Writer) error {
		return renderer.Render(w, run.Snapshot.Graph)
	})
	if err != nil {
		return fmt.Errorf("failed to write heatmap: %w", err)
	}

	run.addOutput(s.output)
	return nil
}
