package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/homeheat/internal/config"
	"github.com/nao1215/homeheat/internal/crawler"
	"github.com/nao1215/homeheat/internal/pipeline"
	"github.com/nao1215/homeheat/internal/snapshot"
	"github.com/nao1215/homeheat/internal/zillow"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the Zillow comparables graph and save a snapshot",
		Long: `Crawl searches Zillow for the given address, then repeatedly requests the
comparables of the most recently discovered home. Homes inside the bounds are
added to the result; the crawl stops when the size target or the iteration cap
is reached, or when there is nothing left to expand.

The result is written to a SQLite snapshot that the heatmap and report
commands read. A summary is printed when the crawl ends.

Examples:
  # Crawl around Atlanta with the default bounds
  homeheat crawl

  # Smaller crawl with an explicit rectangle
  homeheat crawl --city Decatur --state GA --max-size 500 \
    --bounds 33.7,33.8,-84.35,-84.25

  # Stop after 200 expansions and print a Markdown summary
  homeheat crawl --max-iterations 200 --markdown -o summary.md`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	defaults := config.NewConfig()

	// Search flags
	cmd.Flags().String("address", defaults.Address, "Address passed to the search")
	cmd.Flags().String("city", defaults.City, "City of the search")
	cmd.Flags().String("state", defaults.State, "State code of the search")

	// Crawl flags
	cmd.Flags().String("bounds", defaults.Bounds.String(),
		"Admission rectangle as minLat,maxLat,minLon,maxLon")
	cmd.Flags().Int("max-size", crawler.DefaultMaxSize, "Stop once this many homes are collected")
	cmd.Flags().Int("max-iterations", 0, "Stop after this many expansions (0 means no cap)")
	cmd.Flags().Duration("delay", 0, "Pause between two comparables requests")

	// API flags
	cmd.Flags().DurationP("timeout", "t", zillow.DefaultTimeout, "Timeout for each API request")
	cmd.Flags().String("proxy", "", "Route API requests through a SOCKS5 proxy (host:port)")
	cmd.Flags().Int("retries", 0, "Retries after a transport failure")
	cmd.Flags().Int("comps-count", zillow.DefaultCompsCount, "Comparables requested per home")

	// Output flags
	cmd.Flags().String("snapshot", snapshot.DefaultPath, "Snapshot file to write")
	addReportFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Write the summary to the specified file path (creates directories if needed)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	if err := cfg.ValidateCrawl(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	client, err := zillow.NewClient(cfg.ZillowConfig(), zillow.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create Zillow client: %w", err)
	}

	logger.Info("starting crawl",
		"query", cfg.Query(),
		"bounds", cfg.Bounds.String(),
		"maxSize", cfg.MaxSize,
		"maxIterations", cfg.MaxIterations,
	)

	run := pipeline.NewRun(cfg)
	if err := pipeline.CrawlPipeline(cfg, client, pipeline.WithLogger(logger)).Execute(ctx, run); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s. Snapshot saved to %s\n",
		run.Snapshot.Metadata.Reason.Message(), cfg.SnapshotPath)

	return outputSummary(cfg, run.Snapshot, cmd.OutOrStdout())
}
