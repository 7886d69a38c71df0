package snapshot

import "errors"

var (
	// ErrNotFound is returned when the snapshot file does not exist.
	ErrNotFound = errors.New("snapshot not found: run 'homeheat crawl' first")

	// ErrCorrupt is returned when the file exists but cannot be read back as a snapshot.
	ErrCorrupt = errors.New("snapshot is corrupt")

	// ErrNilSnapshot is returned by Save when there is nothing to save.
	ErrNilSnapshot = errors.New("snapshot has no graph")
)
