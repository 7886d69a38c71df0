// Package render turns record sets into self-contained HTML maps.
//
// Both renderers emit a single HTML document built from an embedded
// html/template. The page loads Leaflet from a CDN and carries all data
// inline, so the file can be opened straight from disk.
//
// HeatmapRenderer draws a weighted point heatmap with leaflet.heat.
// ChoroplethRenderer fills GeoJSON features by a colour scale and adds a
// legend.
package render
