package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/homeheat/internal/config"
	"github.com/nao1215/homeheat/internal/pipeline"
	"github.com/nao1215/homeheat/internal/render"
	"github.com/nao1215/homeheat/internal/snapshot"
)

// NewHeatmapCmd creates the heatmap command.
func NewHeatmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Render the crawl snapshot as a heatmap",
		Long: `Heatmap reads the snapshot written by crawl and renders every collected home
as a weighted point of a Leaflet heatmap. The output is a single HTML file that
can be opened in any browser.

Examples:
  homeheat heatmap
  homeheat heatmap --snapshot data/data.db -o maps/atlanta.html --radius 15`,
		Args: cobra.NoArgs,
		RunE: runHeatmapCmd,
	}

	cmd.Flags().String("snapshot", snapshot.DefaultPath, "Snapshot file to read")
	cmd.Flags().StringP("output", "o", config.DefaultHeatmapOutput, "Output HTML file")
	cmd.Flags().Int("radius", render.DefaultRadius, "Point radius in pixels (blur is twice the radius)")

	return cmd
}

// runHeatmapCmd executes the heatmap command.
func runHeatmapCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := stringFlag(cmd, "output", &cfg.HeatmapOutput); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	run := &pipeline.Run{}
	if err := pipeline.HeatmapPipeline(cfg, pipeline.WithLogger(logger)).Execute(ctx, run); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "View the map with a browser by opening %s.\n", cfg.HeatmapOutput)
	return nil
}
