package zillow

import "time"

const (
	// DefaultSearchURL is the GetSearchResults endpoint.
	DefaultSearchURL = "https://www.zillow.com/webservice/GetSearchResults.htm"

	// DefaultCompsURL is the GetComps endpoint.
	DefaultCompsURL = "http://www.zillow.com/webservice/GetComps.htm"

	// DefaultCompsCount is the number of comparables requested per record.
	DefaultCompsCount = 25

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "homeheat"

	// DefaultRetryBackoff is the first pause before a retry. It doubles per attempt.
	DefaultRetryBackoff = time.Second

	// maxErrorBody caps how much of an error response is kept in StatusError.
	maxErrorBody = 512
)

// Config holds everything the client needs. Nothing is read from the
// environment here; the caller resolves the credential.
type Config struct {
	// WSID is the zws-id credential.
	WSID string

	// SearchURL and CompsURL are the endpoint URLs.
	SearchURL string
	CompsURL  string

	// CompsCount is the "count" parameter of GetComps.
	CompsCount int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// UserAgent is the User-Agent header value.
	UserAgent string

	// ProxyAddress routes requests through a SOCKS5 proxy when set (host:port).
	ProxyAddress string

	// MaxRetries is the number of extra attempts after a transport failure.
	MaxRetries int

	// RetryBackoff is the pause before the first retry.
	RetryBackoff time.Duration
}

// DefaultConfig returns a Config with the public endpoints and no credential.
func DefaultConfig() Config {
	return Config{
		SearchURL:    DefaultSearchURL,
		CompsURL:     DefaultCompsURL,
		CompsCount:   DefaultCompsCount,
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		RetryBackoff: DefaultRetryBackoff,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SearchURL == "" {
		c.SearchURL = d.SearchURL
	}
	if c.CompsURL == "" {
		c.CompsURL = d.CompsURL
	}
	if c.CompsCount <= 0 {
		c.CompsCount = d.CompsCount
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = d.RetryBackoff
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	return c
}
