package config

import (
	"time"

	"github.com/nao1215/homeheat/internal/model"
)

// File is the structure of the .homeheat YAML file. Every field is optional;
// zero values leave the current setting untouched.
type File struct {
	Zillow     ZillowSection     `yaml:"zillow,omitempty"`
	Crawl      CrawlSection      `yaml:"crawl,omitempty"`
	Snapshot   string            `yaml:"snapshot,omitempty"`
	Heatmap    HeatmapSection    `yaml:"heatmap,omitempty"`
	Choropleth ChoroplethSection `yaml:"choropleth,omitempty"`
	Log        LogSection        `yaml:"log,omitempty"`
}

// ZillowSection configures the API client.
type ZillowSection struct {
	// WSID is the zws-id credential. ZILLOW_WSID takes precedence.
	WSID         string        `yaml:"zwsid,omitempty"`
	SearchURL    string        `yaml:"searchURL,omitempty"`
	CompsURL     string        `yaml:"compsURL,omitempty"`
	CompsCount   int           `yaml:"compsCount,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	UserAgent    string        `yaml:"userAgent,omitempty"`
	Proxy        string        `yaml:"proxy,omitempty"`
	MaxRetries   int           `yaml:"maxRetries,omitempty"`
	RetryBackoff time.Duration `yaml:"retryBackoff,omitempty"`
}

// CrawlSection configures the comparables crawl.
type CrawlSection struct {
	Address       string        `yaml:"address,omitempty"`
	City          string        `yaml:"city,omitempty"`
	State         string        `yaml:"state,omitempty"`
	Bounds        *model.Bounds `yaml:"bounds,omitempty"`
	MaxSize       int           `yaml:"maxSize,omitempty"`
	MaxIterations int           `yaml:"maxIterations,omitempty"`
	Delay         time.Duration `yaml:"delay,omitempty"`
}

// HeatmapSection configures the heatmap output.
type HeatmapSection struct {
	Output string `yaml:"output,omitempty"`
	Radius int    `yaml:"radius,omitempty"`
}

// ChoroplethSection configures the choropleth pipeline.
type ChoroplethSection struct {
	CSV             string   `yaml:"csv,omitempty"`
	Output          string   `yaml:"output,omitempty"`
	GeoJSONURL      string   `yaml:"geojsonURL,omitempty"`
	GeoJSONCache    string   `yaml:"geojsonCache,omitempty"`
	Caption         string   `yaml:"caption,omitempty"`
	LowerPercentile *float64 `yaml:"lowerPercentile,omitempty"`
	UpperPercentile *float64 `yaml:"upperPercentile,omitempty"`
}

// LogSection configures logging.
type LogSection struct {
	Format string `yaml:"format,omitempty"`
}

// Apply copies every set field of f onto c.
func (f *File) Apply(c *Config) {
	setString(&c.WSID, f.Zillow.WSID)
	setString(&c.SearchURL, f.Zillow.SearchURL)
	setString(&c.CompsURL, f.Zillow.CompsURL)
	setInt(&c.CompsCount, f.Zillow.CompsCount)
	setDuration(&c.Timeout, f.Zillow.Timeout)
	setString(&c.UserAgent, f.Zillow.UserAgent)
	setString(&c.ProxyAddress, f.Zillow.Proxy)
	setInt(&c.MaxRetries, f.Zillow.MaxRetries)
	setDuration(&c.RetryBackoff, f.Zillow.RetryBackoff)

	setString(&c.Address, f.Crawl.Address)
	setString(&c.City, f.Crawl.City)
	setString(&c.State, f.Crawl.State)
	if f.Crawl.Bounds != nil {
		c.Bounds = *f.Crawl.Bounds
	}
	setInt(&c.MaxSize, f.Crawl.MaxSize)
	setInt(&c.MaxIterations, f.Crawl.MaxIterations)
	setDuration(&c.CrawlDelay, f.Crawl.Delay)

	setString(&c.SnapshotPath, f.Snapshot)

	setString(&c.HeatmapOutput, f.Heatmap.Output)
	setInt(&c.Radius, f.Heatmap.Radius)

	setString(&c.CSVPath, f.Choropleth.CSV)
	setString(&c.ChoroplethOutput, f.Choropleth.Output)
	setString(&c.GeoJSONURL, f.Choropleth.GeoJSONURL)
	setString(&c.GeoJSONCache, f.Choropleth.GeoJSONCache)
	setString(&c.Caption, f.Choropleth.Caption)
	if f.Choropleth.LowerPercentile != nil {
		c.LowerPercentile = *f.Choropleth.LowerPercentile
	}
	if f.Choropleth.UpperPercentile != nil {
		c.UpperPercentile = *f.Choropleth.UpperPercentile
	}

	setString(&c.LogFormat, f.Log.Format)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
