package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/nomoriel/phase2vec/internal/cli"
	"github.com/nomoriel/phase2vec/internal/runstore"
)

// registryPath resolves the dispatch registry location, defaulting to a
// per-user database.
func registryPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve default registry location: %w", err)
	}
	return filepath.Join(home, ".phase2vec", "runs.db"), nil
}

// runListRuns prints the dispatch registry, most recent first.
func (a *App) runListRuns(ctx context.Context, cmd *cli.Command) error {
	path, err := registryPath(cmd.RegistryDB)
	if err != nil {
		return err
	}
	store, err := runstore.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	dispatches, err := store.ListDispatches(ctx)
	if err != nil {
		return err
	}
	if len(dispatches) == 0 {
		fmt.Fprintln(a.outW, "no gridsearch runs recorded")
		return nil
	}

	fmt.Fprintf(a.outW, "%-24s %-8s %5s  %-16s %s\n", "GS_NAME", "CLUSTER", "JOBS", "CREATED", "SAVE_DIR")
	for _, d := range dispatches {
		fmt.Fprintf(a.outW, "%-24s %-8s %5d  %-16s %s\n",
			d.GSName, d.ClusterType, d.JobCount, humanize.Time(d.CreatedAt), d.SaveDir)
	}
	return nil
}
