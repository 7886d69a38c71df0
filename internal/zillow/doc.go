// Package zillow is the acquisition client for the Zillow web service.
//
// Two endpoints are used. GetSearchResults turns a free-form address and a
// "City+ST" string into seed records, and GetComps returns the comparable
// properties of one record. Both answer with XML that is parsed with
// github.com/beevik/etree.
//
// # Error model
//
// Failures are split by how far they propagate:
//
//   - Transport failures (network errors, non-2xx status) wrap ErrTransport
//     and are returned to the caller. The crawl treats them as fatal.
//   - An envelope whose message/code is absent, unparseable or non-zero is
//     logged at debug level and yields zero records.
//   - A candidate missing its id, coordinates or valuation is dropped on its
//     own; the rest of the response is still used.
//
// The credential (zws-id) is only ever sent as a query parameter and is
// masked by the secure log handler when a request URL is logged.
package zillow
