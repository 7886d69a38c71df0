// Package crawler expands a graph of valuation records through the
// "comparables" relation.
//
// # Architecture
//
// The Crawler owns a frontier (a stack of records waiting to be expanded),
// a visited set of identifiers, and the Graph being built. Neighbours are
// fetched one record at a time from a Source; the crawl is strictly
// sequential and issues exactly one Source call per iteration.
//
// # Traversal order
//
// Records are popped from the tail of the frontier, so the most recently
// discovered record is expanded first. The admitted set under a size cutoff
// depends on this order.
//
// # Termination
//
// After every expansion the crawl stops, in this priority order, when:
//  1. the number of admitted records reaches the size target
//  2. the iteration count reaches the iteration cap (0 means no cap)
//  3. the frontier is empty
//
// # Usage
//
//	c := crawler.NewCrawler(client,
//	    crawler.WithAdmit(bounds.Admits),
//	    crawler.WithMaxSize(10000),
//	)
//	result, err := c.Crawl(ctx, seeds)
package crawler
