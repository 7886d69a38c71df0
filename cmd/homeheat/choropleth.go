package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/homeheat/internal/boundary"
	"github.com/nao1215/homeheat/internal/colorscale"
	"github.com/nao1215/homeheat/internal/config"
	"github.com/nao1215/homeheat/internal/pipeline"
	"github.com/nao1215/homeheat/internal/zillow"
)

// NewChoroplethCmd creates the choropleth command.
func NewChoroplethCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "choropleth",
		Short: "Render a per-state choropleth from a Zillow CSV export",
		Long: `Choropleth reads a Zillow per-state CSV export and fills every US state with
a colour for the value in the last column of its row. The colour scale spans
the 5th to the 95th percentile of the values; states without a row are drawn
with the colour of 0.

The US state outlines are downloaded once and cached.

Examples:
  homeheat choropleth
  homeheat choropleth --csv exports/State_Zhvi.csv --caption "Home value index" \
    -o zhvi_by_state.html`,
		Args: cobra.NoArgs,
		RunE: runChoroplethCmd,
	}

	defaults := config.NewConfig()

	cmd.Flags().String("csv", config.DefaultCSVPath, "Per-state CSV export")
	cmd.Flags().StringP("output", "o", config.DefaultChoroplethOutput, "Output HTML file")
	cmd.Flags().String("geojson-url", boundary.DefaultURL, "US state outlines to download")
	cmd.Flags().String("geojson-cache", defaults.GeoJSONCache, "Where the state outlines are cached")
	cmd.Flags().String("caption", config.DefaultCaption, "Legend caption")
	cmd.Flags().Float64("lower-percentile", colorscale.DefaultLowerPercentile, "Percentile of the lowest colour")
	cmd.Flags().Float64("upper-percentile", colorscale.DefaultUpperPercentile, "Percentile of the highest colour")
	cmd.Flags().DurationP("timeout", "t", zillow.DefaultTimeout, "Timeout for the outline download")

	return cmd
}

// runChoroplethCmd executes the choropleth command.
func runChoroplethCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := stringFlag(cmd, "output", &cfg.ChoroplethOutput); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	run := &pipeline.Run{}
	if err := pipeline.ChoroplethPipeline(cfg, pipeline.WithLogger(logger)).Execute(ctx, run); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "View the map with a browser by opening %s.\n", cfg.ChoroplethOutput)
	return nil
}
