package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/homeheat/internal/boundary"
	"github.com/nao1215/homeheat/internal/colorscale"
	"github.com/nao1215/homeheat/internal/render"
	"github.com/nao1215/homeheat/internal/statecsv"
)

// LoadCSVStep reads the per-state CSV export.
type LoadCSVStep struct {
	path   string
	logger *slog.Logger
}

// NewLoadCSVStep creates a step reading the CSV file at path.
func NewLoadCSVStep(path string, logger *slog.Logger) *LoadCSVStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadCSVStep{path: path, logger: logger}
}

// Name returns the step name.
func (s *LoadCSVStep) Name() string {
	return "load_csv"
}

// Do loads the table into run.
func (s *LoadCSVStep) Do(_ context.Context, run *Run) error {
	table, err := statecsv.LoadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", s.path, err)
	}

	s.logger.Info("state values loaded",
		"metric", table.MetricColumn,
		"rows", len(table.Rows),
	)
	run.Table = table
	return nil
}

// BoundaryStep makes the state outline document available.
type BoundaryStep struct {
	fetcher *boundary.Fetcher
}

// NewBoundaryStep creates a BoundaryStep using fetcher.
func NewBoundaryStep(fetcher *boundary.Fetcher) *BoundaryStep {
	return &BoundaryStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *BoundaryStep) Name() string {
	return "boundary"
}

// Do fetches or reuses the cached document.
func (s *BoundaryStep) Do(ctx context.Context, run *Run) error {
	fc, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to get state boundaries: %w", err)
	}

	run.Boundaries = fc
	return nil
}

// ColorScaleStep derives the colour scale from the CSV values.
type ColorScaleStep struct {
	opts []colorscale.Option
}

// NewColorScaleStep creates a ColorScaleStep.
func NewColorScaleStep(opts ...colorscale.Option) *ColorScaleStep {
	return &ColorScaleStep{opts: opts}
}

// Name returns the step name.
func (s *ColorScaleStep) Name() string {
	return "color_scale"
}

// Do builds the scale.
func (s *ColorScaleStep) Do(_ context.Context, run *Run) error {
	if run.Table == nil {
		return fmt.Errorf("%w: %s needs the state values", ErrMissingInput, s.Name())
	}

	scale, err := colorscale.Build(run.Table.Values(), s.opts...)
	if err != nil {
		return fmt.Errorf("failed to build colour scale: %w", err)
	}

	run.Scale = scale
	return nil
}

// ChoroplethStep renders the state map.
type ChoroplethStep struct {
	output string
	opts   []render.ChoroplethOption
}

// NewChoroplethStep creates a step writing the choropleth to output.
func NewChoroplethStep(output string, opts ...render.ChoroplethOption) *ChoroplethStep {
	return &ChoroplethStep{output: output, opts: opts}
}

// Name returns the step name.
func (s *ChoroplethStep) Name() string {
	return "choropleth"
}

// Do renders and writes the choropleth.
func (s *ChoroplethStep) Do(_ context.Context, run *Run) error {
	switch {
	case run.Table == nil:
		return fmt.Errorf("%w: %s needs the state values", ErrMissingInput, s.Name())
	case run.Boundaries == nil:
		return fmt.Errorf("%w: %s needs the state boundaries", ErrMissingInput, s.Name())
	case run.Scale == nil:
		return fmt.Errorf("%w: %s needs a colour scale", ErrMissingInput, s.Name())
	}

	renderer := render.NewChoroplethRenderer(s.opts...)
	values := run.Table.ByState()
	err := render.WriteFile(s.output, func(w io.Writer) error {
		return renderer.Render(w, run.Boundaries, run.Scale, values)
	})
	if err != nil {
		return fmt.Errorf("failed to write choropleth: %w", err)
	}

	run.addOutput(s.output)
	return nil
}
