package config

import "errors"

// Configuration validation errors returned by Validate and ValidateCrawl.
var (
	// ErrMissingCredential is returned when a crawl is requested without a zws-id.
	ErrMissingCredential = errors.New("no Zillow credential: export ZILLOW_WSID, add it to .env, or set zillow.zwsid in .homeheat")

	// ErrNoQuery is returned when neither a city nor an address is given for a crawl.
	ErrNoQuery = errors.New("no search query: provide --city or --address")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxSize is returned when the size target is not positive.
	ErrInvalidMaxSize = errors.New("invalid max size: must be positive")

	// ErrInvalidMaxIterations is returned when the iteration cap is negative.
	ErrInvalidMaxIterations = errors.New("invalid max iterations: must be non-negative (0 means no cap)")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidRetries is returned when the retry count is negative.
	ErrInvalidRetries = errors.New("invalid max retries: must be non-negative")

	// ErrInvalidRadius is returned when the heatmap radius is not positive.
	ErrInvalidRadius = errors.New("invalid heatmap radius: must be positive")

	// ErrInvalidPercentiles is returned when the colour scale percentiles are
	// outside [0, 100] or inverted.
	ErrInvalidPercentiles = errors.New("invalid percentiles: need 0 <= lower <= upper <= 100")

	// ErrConflictingReportFormats is returned when both --json and --markdown are given.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidLogFormat is returned for a log format other than text or json.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")
)
