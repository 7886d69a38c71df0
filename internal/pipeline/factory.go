package pipeline

import (
	"net/http"

	"github.com/nao1215/homeheat/internal/boundary"
	"github.com/nao1215/homeheat/internal/colorscale"
	"github.com/nao1215/homeheat/internal/config"
	"github.com/nao1215/homeheat/internal/crawler"
	"github.com/nao1215/homeheat/internal/render"
)

// CrawlPipeline searches seeds, crawls the comparables graph and saves the
// snapshot.
func CrawlPipeline(cfg *config.Config, client Client, opts ...Option) *Pipeline {
	p := New(opts...)

	c := crawler.NewCrawler(client,
		crawler.WithMaxSize(cfg.MaxSize),
		crawler.WithMaxIterations(cfg.MaxIterations),
		crawler.WithAdmit(cfg.Bounds.Admits),
		crawler.WithDelay(cfg.CrawlDelay),
		crawler.WithProgressInterval(cfg.ProgressInterval),
		crawler.WithLogger(p.logger),
	)

	p.AddSteps(
		NewSeedStep(client, p.logger),
		NewCrawlStep(c),
		NewSaveSnapshotStep(cfg.SnapshotPath),
	)

	return p
}

// HeatmapPipeline loads the snapshot and renders the heatmap.
func HeatmapPipeline(cfg *config.Config, opts ...Option) *Pipeline {
	p := New(opts...)

	p.AddSteps(
		NewLoadSnapshotStep(cfg.SnapshotPath),
		NewHeatmapStep(cfg.HeatmapOutput, render.WithRadius(cfg.Radius)),
	)

	return p
}

// ReportPipeline only loads the snapshot; the caller summarises run.Snapshot.
func ReportPipeline(cfg *config.Config, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddStep(NewLoadSnapshotStep(cfg.SnapshotPath))
	return p
}

// ChoroplethPipeline loads the CSV and the state boundaries side by side,
// derives the colour scale and renders the choropleth.
func ChoroplethPipeline(cfg *config.Config, opts ...Option) *Pipeline {
	p := New(opts...)

	fetcher := &boundary.Fetcher{
		URL:        cfg.GeoJSONURL,
		CachePath:  cfg.GeoJSONCache,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     p.logger,
	}

	p.AddSteps(
		NewParallelStep(p.logger,
			NewLoadCSVStep(cfg.CSVPath, p.logger),
			NewBoundaryStep(fetcher),
		),
		NewColorScaleStep(
			colorscale.WithPercentiles(cfg.LowerPercentile, cfg.UpperPercentile),
			colorscale.WithCaption(cfg.Caption),
		),
		NewChoroplethStep(cfg.ChoroplethOutput),
	)

	return p
}
