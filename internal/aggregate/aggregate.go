package aggregate

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/nomoriel/phase2vec/internal/configstore"
	"github.com/nomoriel/phase2vec/internal/ctxlog"
	"github.com/nomoriel/phase2vec/internal/gridsearch"
)

// ResultFileName is the per-job metric file external training jobs emit.
const ResultFileName = "training-results.json"

// ReportFileName is the consolidated report the CLI writes back into the
// results directory.
const ReportFileName = "gridsearch-aggregate-results.tsv"

// Warning records a job whose results could not be aggregated. Warnings are
// non-fatal; aggregation continues past them.
type Warning struct {
	Job    string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("missing result for job %q: %s", w.Job, w.Reason)
}

// Table is the row-per-job aggregation result. Column order: job_name, then
// hyperparameters sorted by name, then metrics sorted by name. Cells absent
// for a row render empty.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Aggregate walks resultsDir for per-job result files and merges all
// (hyperparameters, metrics) pairs into one table. Row order follows the
// directory listing, not expansion order; expansion order is not load-
// bearing here.
func Aggregate(ctx context.Context, resultsDir string) (*Table, []Warning, error) {
	logger := ctxlog.FromContext(ctx)

	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, nil, err
	}

	var (
		rows       []map[string]string
		warnings   []Warning
		paramCols  = map[string]struct{}{}
		metricCols = map[string]struct{}{}
	)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		jobName := entry.Name()
		jobDir := filepath.Join(resultsDir, jobName)

		metrics, err := readMetrics(filepath.Join(jobDir, ResultFileName))
		if err != nil {
			w := Warning{Job: jobName, Reason: err.Error()}
			warnings = append(warnings, w)
			logger.Warn("Skipping job during aggregation.", "job", jobName, "reason", err.Error())
			continue
		}

		row := map[string]string{"job_name": jobName}
		for name, value := range jobParams(jobDir, jobName) {
			paramCols[name] = struct{}{}
			row[name] = value
		}
		for name, value := range metrics {
			metricCols[name] = struct{}{}
			row[name] = configstore.FormatValue(value)
		}
		rows = append(rows, row)
	}

	columns := []string{"job_name"}
	columns = append(columns, sortedKeys(paramCols)...)
	columns = append(columns, sortedKeys(metricCols)...)

	return &Table{Columns: columns, Rows: rows}, warnings, nil
}

// jobParams re-derives a job's hyperparameter identity. The directory name
// yields the scanned parameter names and fallback values; the co-located
// config artifact, when readable, supplies the authoritative values.
func jobParams(jobDir, jobName string) map[string]string {
	params := map[string]string{}
	pairs := ParseJobName(jobName)
	for _, p := range pairs {
		params[p.Name] = p.Value
	}

	doc, err := configstore.ReadFile(filepath.Join(jobDir, gridsearch.ConfigFileName))
	if err != nil {
		return params
	}
	for _, p := range pairs {
		if v, ok := doc.Get(p.Name); ok {
			params[p.Name] = configstore.FormatValue(v)
		}
	}
	return params
}

func readMetrics(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var metrics map[string]any
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("unreadable result file %s: %w", path, err)
	}
	return metrics, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteTSV renders the table as tab-separated values with a header row.
func (t *Table) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
