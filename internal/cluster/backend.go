package cluster

import (
	"fmt"

	"github.com/nomoriel/phase2vec/internal/gridsearch"
)

// DefaultTrainerCmd invokes the external training entrypoint. Generated
// commands pass the job's config with --config-file.
const DefaultTrainerCmd = "phase2vec-train"

// Script is a batch-submission script to be written alongside the dispatch
// manifest. Only the slurm backend produces one.
type Script struct {
	Name     string
	Contents []byte
}

// Command is one wrapped, dispatchable job. Line is what the manifest
// records; for slurm it submits Script rather than running training
// directly.
type Command struct {
	Line   string
	Script *Script
}

// Backend wraps a job descriptor into an executable command for one cluster
// type. Implementations must be stateless: Wrap may be called in any order
// or concurrently.
type Backend interface {
	Wrap(job gridsearch.Job) (Command, error)
}

// Options carries the backend-specific resource parameters collected at the
// CLI boundary. Only the slurm fields are meaningful for the slurm backend;
// the local backend uses TrainerCmd alone.
type Options struct {
	TrainerCmd string

	// ScriptDir is where batch scripts will be written by the job writer;
	// slurm submission lines reference scripts inside it.
	ScriptDir string

	Partition string
	NCPUs     int
	Memory    string
	WallTime  string
}

// UnsupportedClusterTypeError reports an unknown backend discriminator. It
// fails fast, before any command or script is produced.
type UnsupportedClusterTypeError struct {
	Kind string
}

func (e *UnsupportedClusterTypeError) Error() string {
	return fmt.Sprintf("unsupported cluster-type %q (expected local or slurm)", e.Kind)
}

// New resolves a backend discriminator into its implementation.
func New(kind string, opts Options) (Backend, error) {
	if opts.TrainerCmd == "" {
		opts.TrainerCmd = DefaultTrainerCmd
	}
	switch kind {
	case "local":
		return &Local{TrainerCmd: opts.TrainerCmd}, nil
	case "slurm":
		return &Slurm{
			TrainerCmd: opts.TrainerCmd,
			ScriptDir:  opts.ScriptDir,
			Partition:  opts.Partition,
			NCPUs:      opts.NCPUs,
			Memory:     opts.Memory,
			WallTime:   opts.WallTime,
		}, nil
	default:
		return nil, &UnsupportedClusterTypeError{Kind: kind}
	}
}

func trainingInvocation(trainerCmd string, job gridsearch.Job) string {
	return fmt.Sprintf("%s --config-file %s", trainerCmd, job.ConfigPath)
}
