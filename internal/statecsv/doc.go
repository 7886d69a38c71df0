// Package statecsv reads the per-state CSV export used by the choropleth.
//
// Only two columns matter: "State", which holds the key matched against
// the boundary feature ids, and the last column of the file, which holds
// the metric (the most recent month in the export).
package statecsv
