// Package report summarises a crawl snapshot and writes the summary as
// plain text, JSON or Markdown.
//
// A Summary is computed once from a snapshot (NewSummary) and handed to a
// Writer. All writers render the same fields: the run and its query, why
// the crawl stopped, how many records and edges it holds, the spread of
// valuations and the geographic extent of the admitted records.
package report
