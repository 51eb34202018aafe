package aggregate

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomoriel/phase2vec/internal/configstore"
)

func writeJobDir(t *testing.T, resultsDir, name string, params map[string]any, metrics map[string]any) {
	t.Helper()
	jobDir := filepath.Join(resultsDir, name)
	require.NoError(t, os.MkdirAll(jobDir, 0o755))

	if params != nil {
		doc := configstore.NewDocument()
		for k, v := range params {
			doc.Set(k, v)
		}
		require.NoError(t, configstore.WriteFile(filepath.Join(jobDir, "config.hcl"), doc))
	}
	if metrics != nil {
		raw, err := json.Marshal(metrics)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(jobDir, ResultFileName), raw, 0o644))
	}
}

func TestAggregateSkipsMissingResults(t *testing.T) {
	t.Parallel()

	resultsDir := t.TempDir()
	writeJobDir(t, resultsDir, "beta-1",
		map[string]any{"beta": 1.0}, map[string]any{"test_total_loss": 0.5})
	writeJobDir(t, resultsDir, "beta-2",
		map[string]any{"beta": 2.0}, map[string]any{"test_total_loss": 0.4})
	// Third job has a config but no result file yet.
	writeJobDir(t, resultsDir, "beta-4",
		map[string]any{"beta": 4.0}, nil)

	table, warnings, err := Aggregate(context.Background(), resultsDir)
	require.NoError(t, err)

	assert.Len(t, table.Rows, 2)
	require.Len(t, warnings, 1)
	assert.Equal(t, "beta-4", warnings[0].Job)
}

func TestAggregateColumnsAndValues(t *testing.T) {
	t.Parallel()

	resultsDir := t.TempDir()
	writeJobDir(t, resultsDir, "learning_rate-0.001_beta-1",
		map[string]any{"learning_rate": 0.001, "beta": 1.0, "num_epochs": 10.0},
		map[string]any{"test_total_loss": 0.52, "train_total_loss": 0.48})

	table, warnings, err := Aggregate(context.Background(), resultsDir)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, []string{"job_name", "beta", "learning_rate", "test_total_loss", "train_total_loss"}, table.Columns)

	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "learning_rate-0.001_beta-1", row["job_name"])
	assert.Equal(t, "0.001", row["learning_rate"])
	assert.Equal(t, "1", row["beta"])
	assert.Equal(t, "0.52", row["test_total_loss"])
}

func TestAggregateFallsBackToNameParsing(t *testing.T) {
	t.Parallel()

	resultsDir := t.TempDir()
	// No config artifact: identity comes from the directory name alone.
	writeJobDir(t, resultsDir, "learning_rate-0.01", nil,
		map[string]any{"test_total_loss": 0.3})

	table, warnings, err := Aggregate(context.Background(), resultsDir)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "0.01", table.Rows[0]["learning_rate"])
}

func TestAggregateUnreadableResultIsWarning(t *testing.T) {
	t.Parallel()

	resultsDir := t.TempDir()
	jobDir := filepath.Join(resultsDir, "beta-1")
	require.NoError(t, os.MkdirAll(jobDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(jobDir, ResultFileName), []byte("not json"), 0o644))

	table, warnings, err := Aggregate(context.Background(), resultsDir)
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Reason, "unreadable result file")
}

func TestWriteTSV(t *testing.T) {
	t.Parallel()

	table := &Table{
		Columns: []string{"job_name", "beta", "test_total_loss"},
		Rows: []map[string]string{
			{"job_name": "beta-1", "beta": "1", "test_total_loss": "0.5"},
			{"job_name": "beta-2", "beta": "2"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, table.WriteTSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "job_name\tbeta\ttest_total_loss", lines[0])
	assert.Equal(t, "beta-1\t1\t0.5", lines[1])
	assert.Equal(t, "beta-2\t2\t", lines[2], "missing metrics render as empty cells")
}

func TestParseJobName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []Pair
	}{
		{"single", "beta-1", []Pair{{"beta", "1"}}},
		{"underscored param", "learning_rate-0.001", []Pair{{"learning_rate", "0.001"}}},
		{
			"linked pair", "learning_rate-0.001_beta-1",
			[]Pair{{"learning_rate", "0.001"}, {"beta", "1"}},
		},
		{"negative value", "min_dim--1", []Pair{{"min_dim", "-1"}}},
		{"baseline", "baseline", nil},
		{"empty", "", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseJobName(tc.in))
		})
	}
}
