// Package pipeline runs the homeheat workflows as a sequence of steps.
//
// A Run carries the state of one workflow: the search query, the seeds, the
// crawl result and snapshot for the heatmap side, and the CSV table, boundary
// document and colour scale for the choropleth side. Each Step reads what
// earlier steps left in the Run and adds its own output.
//
// CrawlPipeline, HeatmapPipeline and ChoroplethPipeline assemble the steps for
// the three CLI workflows. ParallelStep is used by the choropleth workflow to
// load the CSV and the boundary document at the same time.
package pipeline
