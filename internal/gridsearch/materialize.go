package gridsearch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nomoriel/phase2vec/internal/configstore"
	"github.com/nomoriel/phase2vec/internal/ctxlog"
)

// ConfigFileName is the per-job configuration artifact written into each
// job directory. Its schema is a standalone training configuration document.
const ConfigFileName = "config" + configstore.Ext

// baselineJobName names the single job produced by a manifest with no scans.
const baselineJobName = "baseline"

// Job describes one materialized training job. It is created once per
// expansion and never mutated after dispatch; the aggregator re-derives its
// identity from the config artifact found on disk.
type Job struct {
	// Name uniquely identifies the job within its run group and encodes the
	// varied parameter values, so directory listings are self-describing.
	Name string

	// ConfigPath is where the job's full parameter set is persisted.
	ConfigPath string

	// Overrides holds only the scanned parameters and their selected values.
	Overrides *configstore.Document
}

// JobName renders the human-inspectable name for a variant: the scanned
// parameters in declaration order, each as <param>-<value>, joined by "_".
func JobName(variant *configstore.Document, scanned []string) string {
	if len(scanned) == 0 {
		return baselineJobName
	}
	parts := make([]string, 0, len(scanned))
	for _, name := range scanned {
		v, _ := variant.Get(name)
		parts = append(parts, name+"-"+sanitizeNameSegment(configstore.FormatValue(v)))
	}
	return strings.Join(parts, "_")
}

func sanitizeNameSegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '\t', '\n':
			return '.'
		default:
			return r
		}
	}, s)
}

// Materialize allocates one directory per variant under saveDir, writes each
// variant's full parameter set there and returns the job descriptors.
//
// Naming collisions abort before anything is written: either every job is
// materialized or none is. Individual config writes are atomic, so a reader
// walking saveDir concurrently never observes a half-written config.
func Materialize(ctx context.Context, variants []*configstore.Document, scans []ScanGroup, saveDir string) ([]Job, error) {
	logger := ctxlog.FromContext(ctx)
	scanned := ScannedParams(scans)

	jobs := make([]Job, 0, len(variants))
	seen := make(map[string]struct{}, len(variants))
	for _, variant := range variants {
		name := JobName(variant, scanned)
		if _, dup := seen[name]; dup {
			return nil, &DuplicateJobNameError{Name: name}
		}
		seen[name] = struct{}{}

		overrides := configstore.NewDocument()
		for _, p := range scanned {
			if v, ok := variant.Get(p); ok {
				overrides.Set(p, v)
			}
		}
		jobs = append(jobs, Job{
			Name:       name,
			ConfigPath: filepath.Join(saveDir, name, ConfigFileName),
			Overrides:  overrides,
		})
	}

	for i, job := range jobs {
		jobDir := filepath.Dir(job.ConfigPath)
		if err := os.MkdirAll(jobDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create job directory %s: %w", jobDir, err)
		}
		if err := configstore.WriteFile(job.ConfigPath, variants[i]); err != nil {
			return nil, fmt.Errorf("failed to write config for job %q: %w", job.Name, err)
		}
		logger.Debug("Materialized job config.", "job", job.Name, "path", job.ConfigPath)
	}

	return jobs, nil
}
