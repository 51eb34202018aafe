// Package cluster turns materialized gridsearch jobs into dispatchable
// commands for a concrete execution backend.
//
// Two backends exist: local, which emits directly executable shell
// invocations of the training entrypoint, and slurm, which additionally
// renders one batch-submission script per job and emits the corresponding
// sbatch command. Backends are resolved once at the CLI boundary; wrapping
// is stateless and pure per job, safe to call in any order.
//
// The package only generates commands and scripts. Execution, parallelism,
// retries and wall-time enforcement belong to the external scheduler.
package cluster
