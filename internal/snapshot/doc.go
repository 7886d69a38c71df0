// Package snapshot persists the outcome of a crawl to a single SQLite file.
//
// A snapshot is the handoff between the crawl pipeline and the renderers:
// the crawl writes it once, and the heatmap and report commands read it any
// number of times without touching the network.
//
// # Schema
//
//   - snapshot_meta: exactly one row with the run metadata and a SHA3-256
//     digest of the canonical encoding of the whole snapshot
//   - records: one row per admitted record, with its admission position
//   - edges: the comparables relation, one row per (from, position) pair
//
// Save replaces any previous content in a single transaction. Load verifies
// the digest and the row counts, and reports ErrCorrupt when they disagree.
package snapshot
