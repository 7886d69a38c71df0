package crawler

import "errors"

// ErrNoSeeds is returned when Crawl is called without any seed records.
var ErrNoSeeds = errors.New("no seed records: the crawl needs at least one starting record")
