package gridsearch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomoriel/phase2vec/internal/configstore"
)

func lrBetaScans() []ScanGroup {
	return []ScanGroup{
		{Label: "learning_rate", Params: []ScanParam{
			{Name: "learning_rate", Values: []any{0.001, 0.01}},
		}},
		{Label: "beta", Params: []ScanParam{
			{Name: "beta", Values: []any{1.0, 2.0}},
		}},
	}
}

func TestJobNameEncodesScannedValues(t *testing.T) {
	t.Parallel()

	variant := configstore.NewDocument()
	variant.Set("num_epochs", 10.0)
	variant.Set("learning_rate", 0.001)
	variant.Set("beta", 1.0)

	name := JobName(variant, []string{"learning_rate", "beta"})
	assert.Equal(t, "learning_rate-0.001_beta-1", name)
}

func TestJobNameBaseline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "baseline", JobName(configstore.NewDocument(), nil))
}

func TestMaterializeWritesOneConfigPerVariant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scans := lrBetaScans()
	variants, err := Expand(baseParams(), scans)
	require.NoError(t, err)

	saveDir := t.TempDir()
	jobs, err := Materialize(ctx, variants, scans, saveDir)
	require.NoError(t, err)
	require.Len(t, jobs, len(variants))

	for i, job := range jobs {
		assert.Equal(t, filepath.Join(saveDir, job.Name, ConfigFileName), job.ConfigPath)

		got, err := configstore.ReadFile(job.ConfigPath)
		require.NoError(t, err)
		assert.True(t, variants[i].Equal(got), "config round-trip for job %q", job.Name)

		lr, ok := job.Overrides.Get("learning_rate")
		require.True(t, ok)
		wantLR, _ := variants[i].Get("learning_rate")
		assert.Equal(t, wantLR, lr)
	}
}

func TestMaterializeIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scans := lrBetaScans()
	variants, err := Expand(baseParams(), scans)
	require.NoError(t, err)

	saveDir := t.TempDir()
	first, err := Materialize(ctx, variants, scans, saveDir)
	require.NoError(t, err)

	firstContents := map[string][]byte{}
	for _, job := range first {
		raw, err := os.ReadFile(job.ConfigPath)
		require.NoError(t, err)
		firstContents[job.Name] = raw
	}

	second, err := Materialize(ctx, variants, scans, saveDir)
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i, job := range second {
		assert.Equal(t, first[i].Name, job.Name)
		raw, err := os.ReadFile(job.ConfigPath)
		require.NoError(t, err)
		assert.Equal(t, firstContents[job.Name], raw, "re-running must reproduce identical file contents")
	}
}

func TestMaterializeDuplicateNamesWriteNothing(t *testing.T) {
	t.Parallel()

	variant := configstore.NewDocument()
	variant.Set("beta", 1.0)
	variants := []*configstore.Document{variant, variant.Clone()}

	scans := []ScanGroup{
		{Label: "beta", Params: []ScanParam{
			{Name: "beta", Values: []any{1.0, 1.0}},
		}},
	}

	saveDir := t.TempDir()
	_, err := Materialize(context.Background(), variants, scans, saveDir)
	require.Error(t, err)

	var dup *DuplicateJobNameError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "beta-1", dup.Name)

	entries, err := os.ReadDir(saveDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "a naming collision must not leave partial on-disk state")
}

func TestMaterializeSanitizesNameSegments(t *testing.T) {
	t.Parallel()

	variant := configstore.NewDocument()
	variant.Set("optimizer", "Adam W")
	variants := []*configstore.Document{variant}

	scans := []ScanGroup{
		{Label: "optimizer", Params: []ScanParam{
			{Name: "optimizer", Values: []any{"Adam W"}},
		}},
	}

	jobs, err := Materialize(context.Background(), variants, scans, t.TempDir())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "optimizer-Adam.W", jobs[0].Name)
	assert.NotContains(t, jobs[0].Name, string(os.PathSeparator))
}
