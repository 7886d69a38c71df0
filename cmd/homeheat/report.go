package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/homeheat/internal/pipeline"
	"github.com/nao1215/homeheat/internal/snapshot"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise the crawl snapshot",
		Long: `Report reads the snapshot written by crawl and prints its summary: why the
crawl stopped, how many homes and edges it collected, and the spread of the
valuations.

Examples:
  homeheat report
  homeheat report --json
  homeheat report --markdown -o reports/atlanta.md`,
		Args: cobra.NoArgs,
		RunE: runReportCmd,
	}

	cmd.Flags().String("snapshot", snapshot.DefaultPath, "Snapshot file to read")
	addReportFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Write the summary to the specified file path (creates directories if needed)")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	run := &pipeline.Run{}
	if err := pipeline.ReportPipeline(cfg, pipeline.WithLogger(logger)).Execute(ctx, run); err != nil {
		return err
	}

	return outputSummary(cfg, run.Snapshot, cmd.OutOrStdout())
}
