// Package log builds the slog loggers used by homeheat.
//
// Every logger returned here wraps its output handler in a SecureHandler,
// which masks credentials before a record is written:
//   - attributes whose key names a credential (zws-id, api_key, token, ...)
//   - string values that look like a Zillow web-service id
//   - credential query parameters inside URLs and error messages, so a
//     logged request URL keeps its shape but loses the secret
//
// The level is Warn by default and Debug in verbose mode.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("requesting", "url", u.String()) // zws-id=***REDACTED***
package log
