package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nomoriel/phase2vec/internal/cli"
	"github.com/nomoriel/phase2vec/internal/cluster"
	"github.com/nomoriel/phase2vec/internal/fsutil"
	"github.com/nomoriel/phase2vec/internal/gridsearch"
	"github.com/nomoriel/phase2vec/internal/runstore"
)

// runWriteGridsearchJobs expands a scan file into per-job configurations and
// a dispatch manifest for the requested backend.
//
// Order matters: the backend discriminator is resolved before anything is
// materialized, so an unsupported cluster type fails with zero on-disk state.
func (a *App) runWriteGridsearchJobs(ctx context.Context, cmd *cli.Command) error {
	manifest, err := gridsearch.LoadManifest(cmd.ScanFile)
	if err != nil {
		return err
	}
	a.logger.Debug("Loaded gridsearch manifest.", "gs_name", manifest.GSName, "scan_groups", len(manifest.Scans))

	variants, err := gridsearch.Expand(manifest.Parameters, manifest.Scans)
	if err != nil {
		return err
	}
	a.logger.Debug("Scan expansion complete.", "variants", len(variants))

	fullSaveDir := filepath.Join(cmd.SaveDir, manifest.GSName)

	backend, err := cluster.New(cmd.ClusterType, cluster.Options{
		TrainerCmd: cmd.TrainerCmd,
		ScriptDir:  fullSaveDir,
		Partition:  cmd.SlurmPartition,
		NCPUs:      cmd.SlurmNCPUs,
		Memory:     cmd.SlurmMemory,
		WallTime:   cmd.SlurmWallTime,
	})
	if err != nil {
		return err
	}

	if _, err := fsutil.EnsureDir(fullSaveDir); err != nil {
		return err
	}

	jobs, err := gridsearch.Materialize(ctx, variants, manifest.Scans, fullSaveDir)
	if err != nil {
		return err
	}

	commands := make([]cluster.Command, 0, len(jobs))
	for _, job := range jobs {
		wrapped, err := backend.Wrap(job)
		if err != nil {
			return err
		}
		commands = append(commands, wrapped)
	}

	count, err := cluster.WriteJobs(ctx, commands, fullSaveDir)
	if err != nil {
		return err
	}
	if count != len(variants) {
		return &cluster.IncompleteDispatchError{Expected: len(variants), Written: count}
	}

	a.recordDispatch(ctx, cmd, manifest.GSName, count, fullSaveDir)

	fmt.Fprintf(a.errW, "%d jobs written to %s\n", count, fullSaveDir)
	return nil
}

// recordDispatch writes the run to the registry. Registry trouble is worth a
// warning, never a failed dispatch.
func (a *App) recordDispatch(ctx context.Context, cmd *cli.Command, gsName string, jobCount int, saveDir string) {
	path, err := registryPath(cmd.RegistryDB)
	if err != nil {
		a.logger.Warn("Dispatch not recorded in registry.", "reason", err.Error())
		return
	}
	store, err := runstore.Open(path)
	if err != nil {
		a.logger.Warn("Dispatch not recorded in registry.", "reason", err.Error())
		return
	}
	defer store.Close()

	err = store.RecordDispatch(ctx, &runstore.Dispatch{
		GSName:      gsName,
		ClusterType: cmd.ClusterType,
		JobCount:    jobCount,
		SaveDir:     saveDir,
	})
	if err != nil {
		a.logger.Warn("Dispatch not recorded in registry.", "reason", err.Error())
	}
}

// runGenerateGridsearchConfig writes an editable scan-file template.
func (a *App) runGenerateGridsearchConfig(ctx context.Context, cmd *cli.Command) error {
	output, err := filepath.Abs(cmd.OutputFile)
	if err != nil {
		return err
	}

	manifest := &gridsearch.Manifest{
		GSName:     "gs_" + timestamp(),
		Scans:      defaultScans(),
		Parameters: defaultTrainParameters(),
	}
	if err := gridsearch.WriteManifest(output, manifest); err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "Successfully generated gridsearch config file at %q.\n", output)
	return nil
}
