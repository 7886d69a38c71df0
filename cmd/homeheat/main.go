// Package main provides the entry point for the homeheat CLI.
//
// homeheat crawls the Zillow comparables graph around a city, stores the
// result in a local snapshot and renders it as a heatmap. It also renders a
// per-state choropleth from a Zillow CSV export.
//
// Usage:
//
//	homeheat crawl --city Atlanta --state GA
//	homeheat heatmap
//	homeheat report --markdown
//	homeheat choropleth --csv data/State_MedianValuePerSqft_AllHomes.csv
//
// See --help for all available options.
package main

// main is the entry point for homeheat.
func main() {
	Execute()
}
