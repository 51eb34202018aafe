// Package gridsearch expands a declarative hyperparameter scan into concrete
// training jobs.
//
// A gridsearch manifest names a run group (gs_name), a base parameter set and
// an ordered list of scan groups. Expansion produces the cross product over
// the groups; parameters inside one group are linked and vary together.
// Materialization allocates one directory per variant, named after the varied
// parameter values, and persists the variant's full configuration there.
//
// Expansion order is load-bearing: groups are traversed in declaration order
// with the last-declared group varying fastest, and job identity is derived
// from that order. Nothing in this package executes jobs.
package gridsearch
