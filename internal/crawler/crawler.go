package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/homeheat/internal/model"
)

// DefaultMaxSize is the size target used when WithMaxSize is not given.
const DefaultMaxSize = 10000

// Source yields the comparables of a record.
// Implementations should return an empty slice, not an error, when the
// upstream answer is unusable; any returned error aborts the crawl.
type Source interface {
	Comps(ctx context.Context, id string) ([]model.Record, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context, id string) ([]model.Record, error)

// Comps implements Source.
func (f SourceFunc) Comps(ctx context.Context, id string) ([]model.Record, error) {
	return f(ctx, id)
}

// AdmitFunc decides whether a discovered neighbour joins the result set.
type AdmitFunc func(model.Record) bool

// admitAll is the default admission predicate.
func admitAll(model.Record) bool { return true }

// Crawler expands seed records through a Source.
// A Crawler holds no per-run state and may be reused for several crawls,
// but not concurrently.
type Crawler struct {
	// source fetches the neighbours of a record.
	source Source

	// admit filters discovered neighbours. Seeds are never filtered.
	admit AdmitFunc

	// maxSize stops the crawl once this many records are admitted.
	maxSize int

	// maxIterations stops the crawl after this many expansions. 0 = unbounded.
	maxIterations int

	// delay is slept between two Source calls.
	delay time.Duration

	// progressInterval logs progress every n iterations. 0 disables it.
	progressInterval int

	logger *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithMaxSize sets the size target.
func WithMaxSize(n int) Option {
	return func(c *Crawler) {
		c.maxSize = n
	}
}

// WithMaxIterations caps the number of expansions. 0 means no cap.
func WithMaxIterations(n int) Option {
	return func(c *Crawler) {
		c.maxIterations = n
	}
}

// WithAdmit sets the admission predicate applied to discovered neighbours.
func WithAdmit(fn AdmitFunc) Option {
	return func(c *Crawler) {
		if fn != nil {
			c.admit = fn
		}
	}
}

// WithDelay sets a pause between two consecutive Source calls.
func WithDelay(d time.Duration) Option {
	return func(c *Crawler) {
		c.delay = d
	}
}

// WithProgressInterval logs a progress line every n iterations.
func WithProgressInterval(n int) Option {
	return func(c *Crawler) {
		c.progressInterval = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// NewCrawler creates a Crawler reading neighbours from src.
func NewCrawler(src Source, opts ...Option) *Crawler {
	c := &Crawler{
		source:           src,
		admit:            admitAll,
		maxSize:          DefaultMaxSize,
		progressInterval: 100,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Result is the outcome of a crawl.
type Result struct {
	// Graph holds the admitted records and the traversed relation.
	Graph *model.Graph

	// Reason is why the crawl stopped.
	Reason model.TerminationReason

	// Iterations is the number of records popped and expanded.
	Iterations int

	// SeedCount is the number of distinct seed records.
	SeedCount int
}

// Crawl expands the graph outward from seeds.
//
// Seeds are admitted unconditionally. If the seeds alone already meet the
// size target the crawl stops before any expansion. A Source error or a
// cancelled context aborts the crawl and no partial result is returned.
func (c *Crawler) Crawl(ctx context.Context, seeds []model.Record) (*Result, error) {
	if len(seeds) == 0 {
		return nil, ErrNoSeeds
	}

	graph := model.NewGraph()
	visited := make(map[string]struct{}, len(seeds))
	frontier := make([]model.Record, 0, len(seeds))

	for _, seed := range seeds {
		if _, ok := visited[seed.ID]; ok {
			continue
		}
		visited[seed.ID] = struct{}{}
		graph.Add(seed)
		frontier = append(frontier, seed)
	}

	result := &Result{Graph: graph, SeedCount: len(frontier)}

	if graph.Len() >= c.maxSize {
		result.Reason = model.ReasonSizeTarget
		c.logDone(result)
		return result, nil
	}

	for {
		if len(frontier) == 0 {
			result.Reason = model.ReasonFrontierExhausted
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		current := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		result.Iterations++

		neighbours, err := c.source.Comps(ctx, current.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch comparables of %s: %w", current.ID, err)
		}

		for _, n := range neighbours {
			graph.AddEdge(current.ID, n.ID)

			if _, seen := visited[n.ID]; seen {
				continue
			}
			if !c.admit(n) {
				continue
			}
			visited[n.ID] = struct{}{}
			graph.Add(n)
			frontier = append(frontier, n)
		}

		if reason, done := c.shouldStop(graph.Len(), result.Iterations, len(frontier)); done {
			result.Reason = reason
			break
		}

		if c.progressInterval > 0 && result.Iterations%c.progressInterval == 0 {
			c.logger.Debug("crawl progress",
				"iterations", result.Iterations,
				"records", graph.Len(),
				"frontier", len(frontier),
			)
		}

		if c.delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delay):
			}
		}
	}

	c.logDone(result)
	return result, nil
}

// shouldStop evaluates the termination conditions in priority order.
func (c *Crawler) shouldStop(size, iterations, frontier int) (model.TerminationReason, bool) {
	switch {
	case size >= c.maxSize:
		return model.ReasonSizeTarget, true
	case c.maxIterations > 0 && iterations >= c.maxIterations:
		return model.ReasonIterationCap, true
	case frontier == 0:
		return model.ReasonFrontierExhausted, true
	default:
		return "", false
	}
}

func (c *Crawler) logDone(result *Result) {
	c.logger.Info("crawl finished",
		"reason", result.Reason.String(),
		"records", result.Graph.Len(),
		"edges", result.Graph.EdgeCount(),
		"iterations", result.Iterations,
	)
}
