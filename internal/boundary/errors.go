package boundary

import "errors"

var (
	// ErrNotFeatureCollection is returned when a document is valid JSON but
	// not a GeoJSON FeatureCollection.
	ErrNotFeatureCollection = errors.New("document is not a GeoJSON FeatureCollection")

	// ErrDownload is wrapped by every failure while fetching the document.
	ErrDownload = errors.New("failed to download boundary document")
)
