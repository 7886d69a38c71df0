package zillow

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is wrapped by every network-level or HTTP status failure.
	ErrTransport = errors.New("zillow transport failure")

	// ErrMissingCredential is returned by NewClient when no zws-id is configured.
	ErrMissingCredential = errors.New("zillow credential is not set: export ZILLOW_WSID or set zwsid in the config file")

	// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is not host:port.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
)

// StatusError reports a non-2xx HTTP answer.
type StatusError struct {
	// Endpoint is the path of the called endpoint, without the query string.
	Endpoint string

	// StatusCode is the HTTP status code.
	StatusCode int

	// Body is the beginning of the response body.
	Body string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("fail code (%d) from %s: %s", e.StatusCode, e.Endpoint, e.Body)
}

// Unwrap makes errors.Is(err, ErrTransport) true for status failures.
func (e *StatusError) Unwrap() error {
	return ErrTransport
}
