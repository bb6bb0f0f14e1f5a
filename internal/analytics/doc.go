// Package analytics turns raw response streams and peer populations into
// chart-ready series and summary statistics: percentile ranks, binned
// distributions, item-characteristic curves, ability trajectories,
// difficulty/ability scatters, and topic radars.
//
// Every function here is a pure, synchronous transformation. Degenerate
// input (empty peer pools, single-valued distributions) degrades to defined
// neutral outputs instead of NaN or Inf.
package analytics
