package boundary

import (
	"encoding/json"
	"fmt"
	"os"
)

// FeatureCollection is a GeoJSON FeatureCollection.
// Geometry and properties are kept as raw JSON and passed through untouched.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON feature. ID carries the state abbreviation.
type Feature struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Properties json.RawMessage `json:"properties,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
}

// IDs returns the feature ids in document order.
func (fc *FeatureCollection) IDs() []string {
	ids := make([]string, len(fc.Features))
	for i, f := range fc.Features {
		ids[i] = f.ID
	}
	return ids
}

// Decode parses data as a FeatureCollection.
func Decode(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFeatureCollection, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: type is %q", ErrNotFeatureCollection, fc.Type)
	}
	return &fc, nil
}

// Load reads and decodes the document at path.
func Load(path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, fmt.Errorf("failed to read boundary file: %w", err)
	}
	return Decode(data)
}
