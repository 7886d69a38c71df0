package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for homeheat.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "homeheat",
		Short: "Map home valuations from the Zillow comparables graph",
		Long: `homeheat collects home valuations by crawling the Zillow comparables graph
outward from the results of an address search, then renders them as an
interactive heatmap. It also renders a per-state choropleth from a Zillow CSV
export.

The Zillow credential is read from ZILLOW_WSID (a .env file in the working
directory is loaded first) or from zillow.zwsid in the .homeheat config file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .homeheat in current or home directory)")
	cmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHeatmapCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewChoroplethCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
