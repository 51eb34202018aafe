// Package aggregate consolidates scattered per-job gridsearch results into
// one tabular report.
//
// It walks a results directory, re-derives each job's hyperparameter
// identity from its directory name (the inverse of the materializer's naming
// function) and from the co-located config artifact, and merges the job's
// metric file into a row. Missing or unreadable results are recorded as
// warnings, not fatal errors: partial aggregation is expected while cluster
// jobs are still running or have failed.
package aggregate
