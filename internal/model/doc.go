// Package model defines the core data structures shared across homeheat.
//
// This package contains the following main types:
//   - Record: one valuation data point (identifier, coordinates, value)
//   - Bounds: the geographic rectangle used as the crawl admission filter
//   - Graph: the admitted records plus the comparables relation that was traversed
//   - Snapshot: a Graph with the metadata of the crawl run that produced it
//   - StateValue: one row of the per-state valuation export
//
// Models are kept free of I/O so that the crawler, the snapshot store, the
// renderers and the report writers can all depend on them without import cycles.
package model
