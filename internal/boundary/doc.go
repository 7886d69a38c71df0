// Package boundary fetches, caches and decodes the GeoJSON document that
// holds the US state outlines used by the choropleth.
//
// The document is downloaded once and kept on disk; later runs read the
// cached copy and never touch the network.
package boundary
