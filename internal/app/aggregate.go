package app

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/nomoriel/phase2vec/internal/aggregate"
	"github.com/nomoriel/phase2vec/internal/cli"
	"github.com/nomoriel/phase2vec/internal/configstore"
)

// runAggregateResults walks a results tree, consolidates per-job metrics and
// writes the TSV report back into the results directory. Missing results are
// reported as warnings; the (possibly incomplete) table is always produced.
func (a *App) runAggregateResults(ctx context.Context, cmd *cli.Command) error {
	table, warnings, err := aggregate.Aggregate(ctx, cmd.ResultsDir)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := table.WriteTSV(&buf); err != nil {
		return err
	}
	reportPath := filepath.Join(cmd.ResultsDir, aggregate.ReportFileName)
	if err := configstore.WriteRawFile(reportPath, buf.Bytes()); err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Fprintln(a.errW, w.String())
	}
	fmt.Fprintf(a.errW, "aggregated %d jobs (%d missing) into %s\n", len(table.Rows), len(warnings), reportPath)
	return nil
}
