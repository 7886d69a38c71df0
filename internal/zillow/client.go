package zillow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/nao1215/homeheat/internal/model"
)

// Client talks to the search and comparables endpoints.
// It holds one reusable *http.Client and is safe for sequential use by a
// single crawl.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client. The proxy and timeout settings of
// Config are ignored when this option is used.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client from cfg. Zero fields of cfg take their defaults.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.WSID == "" {
		return nil, ErrMissingCredential
	}
	cfg = cfg.withDefaults()

	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.httpClient == nil {
		hc, err := newHTTPClient(cfg)
		if err != nil {
			return nil, err
		}
		c.httpClient = hc
	}

	return c, nil
}

// newHTTPClient builds the HTTP client, dialing through SOCKS5 when a proxy
// address is configured.
func newHTTPClient(cfg Config) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}

	if cfg.ProxyAddress != "" {
		if !isValidProxyAddress(cfg.ProxyAddress) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", cfg.ProxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}, nil
}

// isValidProxyAddress reports whether address is host:port with a port in 1..65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// SearchResults looks up an address and returns the matching records.
// cityStateZip is the "City+ST" form; spaces are replaced by '+'.
func (c *Client) SearchResults(ctx context.Context, address, cityStateZip string) ([]model.Record, error) {
	params := url.Values{}
	params.Set("zws-id", c.cfg.WSID)
	params.Set("address", address)
	params.Set("citystatezip", strings.ReplaceAll(cityStateZip, " ", "+"))

	body, err := c.get(ctx, c.cfg.SearchURL, params)
	if err != nil {
		return nil, err
	}

	return parseSearchResults(body, c.logger), nil
}

// Comps returns the comparables of the record with the given zpid.
// It satisfies crawler.Source.
func (c *Client) Comps(ctx context.Context, zpid string) ([]model.Record, error) {
	params := url.Values{}
	params.Set("zws-id", c.cfg.WSID)
	params.Set("zpid", zpid)
	params.Set("count", strconv.Itoa(c.cfg.CompsCount))

	body, err := c.get(ctx, c.cfg.CompsURL, params)
	if err != nil {
		return nil, err
	}

	return parseComps(body, c.logger), nil
}

// get performs a GET with bounded retries and returns the response body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	backoff := c.cfg.RetryBackoff

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying request", "endpoint", endpoint, "attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		body, err := c.do(ctx, endpoint, params)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, lastErr
}

// do performs one request.
func (c *Client) do(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL %q: %w", endpoint, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	c.logger.Debug("requesting", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // best effort
		return nil, &StatusError{
			Endpoint:   u.Path,
			StatusCode: resp.StatusCode,
			Body:       string(snippet),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	return body, nil
}
