// Package app wires the parsed command line to the gridsearch, cluster,
// aggregation and registry components and owns the application lifecycle.
package app
