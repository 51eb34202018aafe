package cluster

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/nomoriel/phase2vec/internal/gridsearch"
)

// SLURM resource defaults, matching the CLI option defaults.
const (
	DefaultSlurmPartition = "main"
	DefaultSlurmNCPUs     = 1
	DefaultSlurmMemory    = "2GB"
	DefaultSlurmWallTime  = "6:00:00"
)

// Slurm wraps jobs as sbatch submissions. Each job gets its own batch script
// carrying the resource directives; the command line submits that script.
type Slurm struct {
	TrainerCmd string
	ScriptDir  string

	Partition string
	NCPUs     int
	Memory    string
	WallTime  string
}

var sbatchTemplate = template.Must(template.New("sbatch").Parse(`#!/bin/bash
#SBATCH --job-name={{.JobName}}
#SBATCH --partition={{.Partition}}
#SBATCH --cpus-per-task={{.NCPUs}}
#SBATCH --mem={{.Memory}}
#SBATCH --time={{.WallTime}}
#SBATCH --output={{.JobDir}}/slurm-%j.out

{{.Invocation}}
`))

// Wrap implements Backend.
func (s *Slurm) Wrap(job gridsearch.Job) (Command, error) {
	scriptName := job.Name + ".sbatch"

	var buf bytes.Buffer
	err := sbatchTemplate.Execute(&buf, struct {
		JobName    string
		Partition  string
		NCPUs      int
		Memory     string
		WallTime   string
		JobDir     string
		Invocation string
	}{
		JobName:    job.Name,
		Partition:  s.Partition,
		NCPUs:      s.NCPUs,
		Memory:     s.Memory,
		WallTime:   s.WallTime,
		JobDir:     filepath.Dir(job.ConfigPath),
		Invocation: trainingInvocation(s.TrainerCmd, job),
	})
	if err != nil {
		return Command{}, fmt.Errorf("failed to render batch script for job %q: %w", job.Name, err)
	}

	return Command{
		Line:   "sbatch " + filepath.Join(s.ScriptDir, scriptName),
		Script: &Script{Name: scriptName, Contents: buf.Bytes()},
	}, nil
}
