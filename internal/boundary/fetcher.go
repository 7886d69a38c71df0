package boundary

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	// DefaultURL is the US states outline document.
	DefaultURL = "https://raw.githubusercontent.com/python-visualization/folium/master/examples/data/us-states.json"

	// cacheFileName is the file name inside the cache directory.
	cacheFileName = "us-states.json"

	// maxDocumentSize caps the download.
	maxDocumentSize = 32 << 20
)

// DefaultCachePath returns $XDG_CACHE_HOME/homeheat/us-states.json.
func DefaultCachePath() string {
	return filepath.Join(xdg.CacheHome, "homeheat", cacheFileName)
}

// Fetcher makes sure a local copy of the boundary document exists.
type Fetcher struct {
	// URL is where the document is downloaded from.
	URL string

	// CachePath is where the document is kept.
	CachePath string

	// HTTPClient performs the download. A client with a 30s timeout is used when nil.
	HTTPClient *http.Client

	// Logger receives progress messages. slog.Default is used when nil.
	Logger *slog.Logger
}

// NewFetcher returns a Fetcher with the default URL and cache path.
func NewFetcher() *Fetcher {
	return &Fetcher{
		URL:       DefaultURL,
		CachePath: DefaultCachePath(),
	}
}

// Ensure returns the path of the cached document, downloading it first when
// it is not on disk yet. A downloaded body is validated before it is cached.
func (f *Fetcher) Ensure(ctx context.Context) (string, error) {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(f.CachePath); err == nil {
		logger.Debug("boundary file cached", "path", f.CachePath)
		return f.CachePath, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check boundary cache: %w", err)
	}

	logger.Info("downloading boundary file", "url", f.URL)

	data, err := f.download(ctx)
	if err != nil {
		return "", err
	}
	if _, err := Decode(data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}

	if err := writeAtomic(f.CachePath, data); err != nil {
		return "", err
	}

	return f.CachePath, nil
}

// Fetch ensures the cached copy and decodes it.
func (f *Fetcher) Fetch(ctx context.Context) (*FeatureCollection, error) {
	path, err := f.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	client := f.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from %s", ErrDownload, resp.StatusCode, f.URL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	return data, nil
}

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".boundary-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write boundary cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close boundary cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move boundary cache into place: %w", err)
	}
	return nil
}
