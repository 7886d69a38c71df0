package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ParallelStep runs independent steps concurrently and waits for all of them.
// The steps must write disjoint fields of the Run.
type ParallelStep struct {
	steps  []Step
	logger *slog.Logger
}

// NewParallelStep creates a ParallelStep.
func NewParallelStep(logger *slog.Logger, steps ...Step) *ParallelStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParallelStep{steps: steps, logger: logger}
}

// Name returns the step name, listing the inner steps.
func (s *ParallelStep) Name() string {
	names := make([]string, len(s.steps))
	for i, step := range s.steps {
		names[i] = step.Name()
	}
	return "parallel(" + strings.Join(names, ",") + ")"
}

// Do runs the inner steps. The first failure cancels the others and is
// returned.
func (s *ParallelStep) Do(ctx context.Context, run *Run) error {
	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for _, step := range s.steps {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err := step.Do(ctx, run); err != nil {
				s.logger.Warn("parallel step failed",
					"step", step.Name(),
					"error", err,
				)
				return err
			}
			return nil
		})
	}

	err := g.Wait()

	s.logger.Debug("parallel steps complete",
		"steps", len(s.steps),
		"elapsed", time.Since(startTime),
	)

	return err
}
