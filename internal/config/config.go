package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/homeheat/internal/boundary"
	"github.com/nao1215/homeheat/internal/colorscale"
	"github.com/nao1215/homeheat/internal/crawler"
	"github.com/nao1215/homeheat/internal/model"
	"github.com/nao1215/homeheat/internal/render"
	"github.com/nao1215/homeheat/internal/snapshot"
	"github.com/nao1215/homeheat/internal/zillow"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths.
	AppName = "homeheat"

	// EnvWSID is the environment variable holding the Zillow credential.
	EnvWSID = "ZILLOW_WSID"

	// DefaultCity and DefaultState form the default search.
	DefaultCity  = "Atlanta"
	DefaultState = "GA"

	// DefaultHeatmapOutput is the heatmap file name.
	DefaultHeatmapOutput = "atlanta_heatmap.html"

	// DefaultCSVPath is the per-state CSV export.
	DefaultCSVPath = "data/State_MedianValuePerSqft_AllHomes.csv"

	// DefaultChoroplethOutput is the choropleth file name.
	DefaultChoroplethOutput = "price_by_state.html"

	// DefaultCaption labels the choropleth legend.
	DefaultCaption = "Zillow Median Price Per Square Foot ($ in thousands)"

	// DefaultProgressInterval logs crawl progress every n iterations.
	DefaultProgressInterval = 100

	// DefaultLogFormat is the log output encoding.
	DefaultLogFormat = "text"
)

// DefaultBounds is the Atlanta admission rectangle.
var DefaultBounds = model.Bounds{MinLat: 33.6, MaxLat: 33.9, MinLon: -84.5, MaxLon: -84.2}

// Config holds every option of every command. It is built once in the CLI
// and passed down explicitly.
type Config struct {
	// WSID is the Zillow web-service credential.
	WSID string

	// SearchURL and CompsURL override the Zillow endpoints.
	SearchURL string
	CompsURL  string

	// CompsCount is the number of comparables requested per record.
	CompsCount int

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// ProxyAddress routes API requests through a SOCKS5 proxy (host:port).
	ProxyAddress string

	// MaxRetries and RetryBackoff control retries after a transport failure.
	MaxRetries   int
	RetryBackoff time.Duration

	// Address, City and State form the seed search.
	Address string
	City    string
	State   string

	// Bounds is the admission rectangle for discovered records.
	Bounds model.Bounds

	// MaxSize is the size target of the crawl.
	MaxSize int

	// MaxIterations caps the crawl. 0 means no cap.
	MaxIterations int

	// CrawlDelay pauses between two comparables requests.
	CrawlDelay time.Duration

	// ProgressInterval logs progress every n iterations. 0 disables it.
	ProgressInterval int

	// SnapshotPath is the SQLite file written by crawl and read by heatmap and report.
	SnapshotPath string

	// HeatmapOutput is the heatmap HTML file.
	HeatmapOutput string

	// Radius is the heatmap point radius; blur is twice this value.
	Radius int

	// CSVPath is the per-state CSV export.
	CSVPath string

	// ChoroplethOutput is the choropleth HTML file.
	ChoroplethOutput string

	// GeoJSONURL and GeoJSONCache locate the state outline document.
	GeoJSONURL   string
	GeoJSONCache string

	// Caption labels the choropleth legend.
	Caption string

	// LowerPercentile and UpperPercentile fix the colour scale domain.
	LowerPercentile float64
	UpperPercentile float64

	// JSONReport and MarkdownReport select the summary format. Plain text otherwise.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile writes the summary to a file instead of stdout.
	ReportFile string

	// Verbose lowers the log level to Debug.
	Verbose bool

	// LogFormat is "text" or "json".
	LogFormat string

	// ConfigFilePath is an explicit config file location.
	ConfigFilePath string
}

// NewConfig returns a Config with all defaults set.
func NewConfig() *Config {
	return &Config{
		SearchURL:        zillow.DefaultSearchURL,
		CompsURL:         zillow.DefaultCompsURL,
		CompsCount:       zillow.DefaultCompsCount,
		Timeout:          zillow.DefaultTimeout,
		UserAgent:        zillow.DefaultUserAgent,
		RetryBackoff:     zillow.DefaultRetryBackoff,
		Address:          DefaultCity,
		City:             DefaultCity,
		State:            DefaultState,
		Bounds:           DefaultBounds,
		MaxSize:          crawler.DefaultMaxSize,
		ProgressInterval: DefaultProgressInterval,
		SnapshotPath:     snapshot.DefaultPath,
		HeatmapOutput:    DefaultHeatmapOutput,
		Radius:           render.DefaultRadius,
		CSVPath:          DefaultCSVPath,
		ChoroplethOutput: DefaultChoroplethOutput,
		GeoJSONURL:       boundary.DefaultURL,
		GeoJSONCache:     filepath.Join(XDGCacheDir(), "us-states.json"),
		Caption:          DefaultCaption,
		LowerPercentile:  colorscale.DefaultLowerPercentile,
		UpperPercentile:  colorscale.DefaultUpperPercentile,
		LogFormat:        DefaultLogFormat,
	}
}

// XDGDataDir returns the homeheat data directory.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the homeheat config directory.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the homeheat cache directory.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Query returns the seed search.
func (c *Config) Query() model.Query {
	return model.Query{Address: c.Address, City: c.City, State: c.State}
}

// ZillowConfig returns the client settings.
func (c *Config) ZillowConfig() zillow.Config {
	return zillow.Config{
		WSID:         c.WSID,
		SearchURL:    c.SearchURL,
		CompsURL:     c.CompsURL,
		CompsCount:   c.CompsCount,
		Timeout:      c.Timeout,
		UserAgent:    c.UserAgent,
		ProxyAddress: c.ProxyAddress,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
	}
}

// Validate checks the options shared by all commands. Crawl limits and
// bounds are left to ValidateCrawl so a stored snapshot can still be
// rendered when they are off.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Radius <= 0 {
		return ErrInvalidRadius
	}
	if c.LowerPercentile < 0 || c.UpperPercentile > 100 || c.LowerPercentile > c.UpperPercentile {
		return ErrInvalidPercentiles
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return ErrInvalidLogFormat
	}
	return nil
}

// ValidateCrawl checks the options a crawl additionally needs.
func (c *Config) ValidateCrawl() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.MaxSize <= 0 {
		return ErrInvalidMaxSize
	}
	if c.MaxIterations < 0 {
		return ErrInvalidMaxIterations
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.MaxRetries < 0 {
		return ErrInvalidRetries
	}
	if err := c.Bounds.Validate(); err != nil {
		return fmt.Errorf("invalid bounds: %w", err)
	}
	if c.WSID == "" {
		return ErrMissingCredential
	}
	if c.City == "" && c.Address == "" {
		return ErrNoQuery
	}
	return nil
}
