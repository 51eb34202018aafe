package gridsearch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomoriel/phase2vec/internal/configstore"
)

func writeScanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridsearch-config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	path := writeScanFile(t, `
gs_name = "gs_test"

scan "learning_rate" {
  learning_rate = [0.001, 0.01]
}

scan "lr_beta" {
  momentum = [0.0, 0.9]
  beta     = [1, 2]
}

parameters {
  num_epochs    = 10
  learning_rate = 0.0001
}
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, "gs_test", m.GSName)
	require.Len(t, m.Scans, 2)

	assert.Equal(t, "learning_rate", m.Scans[0].Label)
	require.Len(t, m.Scans[0].Params, 1)
	assert.Equal(t, []any{0.001, 0.01}, m.Scans[0].Params[0].Values)

	assert.Equal(t, "lr_beta", m.Scans[1].Label)
	require.Len(t, m.Scans[1].Params, 2)
	assert.Equal(t, "momentum", m.Scans[1].Params[0].Name)
	assert.Equal(t, "beta", m.Scans[1].Params[1].Name)

	epochs, ok := m.Parameters.Get("num_epochs")
	require.True(t, ok)
	assert.Equal(t, 10.0, epochs)
}

func TestLoadManifestMissingGSName(t *testing.T) {
	t.Parallel()

	path := writeScanFile(t, `
parameters {
  num_epochs = 10
}
`)
	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gs_name")
}

func TestLoadManifestMissingParameters(t *testing.T) {
	t.Parallel()

	path := writeScanFile(t, `gs_name = "gs_test"` + "\n")
	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameters")
}

func TestLoadManifestScalarScanValue(t *testing.T) {
	t.Parallel()

	path := writeScanFile(t, `
gs_name = "gs_test"

scan "beta" {
  beta = 1
}

parameters {
  num_epochs = 10
}
`)
	_, err := LoadManifest(path)
	var malformed *MalformedScanError
	require.True(t, errors.As(err, &malformed))
	assert.Contains(t, malformed.Reason, "list of values")
}

func TestLoadManifestMismatchedLinkedLengths(t *testing.T) {
	t.Parallel()

	path := writeScanFile(t, `
gs_name = "gs_test"

scan "lr_beta" {
  learning_rate = [0.001, 0.01]
  beta          = [1, 2, 4]
}

parameters {
  num_epochs = 10
}
`)
	_, err := LoadManifest(path)
	var malformed *MalformedScanError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "lr_beta", malformed.Scan)
}

func TestWriteManifestRoundTrip(t *testing.T) {
	t.Parallel()

	params := configstore.NewDocument()
	params.Set("num_epochs", 10.0)
	params.Set("optimizer", "Adam")

	m := &Manifest{
		GSName: "gs_roundtrip",
		Scans: []ScanGroup{
			{Label: "learning_rate", Params: []ScanParam{
				{Name: "learning_rate", Values: []any{0.0001, 0.001}},
			}},
		},
		Parameters: params,
	}

	path := filepath.Join(t.TempDir(), "gridsearch-config.hcl")
	require.NoError(t, WriteManifest(path, m))

	got, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.GSName, got.GSName)
	require.Len(t, got.Scans, 1)
	assert.Equal(t, m.Scans[0].Params[0].Values, got.Scans[0].Params[0].Values)
	assert.True(t, m.Parameters.Equal(got.Parameters))
}
