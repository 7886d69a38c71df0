package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/homeheat/internal/config"
	hlog "github.com/nao1215/homeheat/internal/log"
	"github.com/nao1215/homeheat/internal/model"
	"github.com/nao1215/homeheat/internal/report"
)

// loadConfig builds the configuration for cmd: defaults, then the config
// file, then .env and the environment, then every flag the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var configPath string
	if f := cmd.Flags().Lookup("config"); f != nil {
		configPath = f.Value.String()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies the flags that were set on the command line onto cfg.
// Flags a command does not define are never reported as changed.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	var bounds string

	setters := []error{
		boolFlag(cmd, "verbose", &cfg.Verbose),
		stringFlag(cmd, "log-format", &cfg.LogFormat),

		stringFlag(cmd, "address", &cfg.Address),
		stringFlag(cmd, "city", &cfg.City),
		stringFlag(cmd, "state", &cfg.State),
		stringFlag(cmd, "bounds", &bounds),
		intFlag(cmd, "max-size", &cfg.MaxSize),
		intFlag(cmd, "max-iterations", &cfg.MaxIterations),
		durationFlag(cmd, "delay", &cfg.CrawlDelay),
		durationFlag(cmd, "timeout", &cfg.Timeout),
		stringFlag(cmd, "proxy", &cfg.ProxyAddress),
		intFlag(cmd, "retries", &cfg.MaxRetries),
		intFlag(cmd, "comps-count", &cfg.CompsCount),

		stringFlag(cmd, "snapshot", &cfg.SnapshotPath),
		intFlag(cmd, "radius", &cfg.Radius),

		stringFlag(cmd, "csv", &cfg.CSVPath),
		stringFlag(cmd, "geojson-url", &cfg.GeoJSONURL),
		stringFlag(cmd, "geojson-cache", &cfg.GeoJSONCache),
		stringFlag(cmd, "caption", &cfg.Caption),
		floatFlag(cmd, "lower-percentile", &cfg.LowerPercentile),
		floatFlag(cmd, "upper-percentile", &cfg.UpperPercentile),

		boolFlag(cmd, "json", &cfg.JSONReport),
		boolFlag(cmd, "markdown", &cfg.MarkdownReport),
	}
	for _, err := range setters {
		if err != nil {
			return err
		}
	}

	if bounds != "" {
		b, err := model.ParseBounds(bounds)
		if err != nil {
			return fmt.Errorf("invalid --bounds: %w", err)
		}
		cfg.Bounds = b
	}
	return nil
}

func stringFlag(cmd *cobra.Command, name string, dst *string) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func intFlag(cmd *cobra.Command, name string, dst *int) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func floatFlag(cmd *cobra.Command, name string, dst *float64) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func boolFlag(cmd *cobra.Command, name string, dst *bool) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func durationFlag(cmd *cobra.Command, name string, dst *time.Duration) error {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetDuration(name)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// addReportFlags registers the summary output flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output the summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the summary as Markdown (mutually exclusive with --json)")
}

// setupLogger creates the secure logger and makes it the default.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	logger := hlog.New(cmd.ErrOrStderr(), hlog.Format(cfg.LogFormat), cfg.Verbose)
	slog.SetDefault(logger)
	return logger
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// outputSummary writes the snapshot summary in the configured format, either
// to cfg.ReportFile or to stdout.
func outputSummary(cfg *config.Config, snap *model.Snapshot, stdout io.Writer) error {
	output := stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := w.Write(report.NewSummary(snap))
	return err
}
