package gridsearch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomoriel/phase2vec/internal/configstore"
)

func baseParams() *configstore.Document {
	doc := configstore.NewDocument()
	doc.Set("num_epochs", 10.0)
	doc.Set("learning_rate", 0.0001)
	doc.Set("beta", 1.0)
	return doc
}

func TestExpandZeroScansYieldsBase(t *testing.T) {
	t.Parallel()

	base := baseParams()
	variants, err := Expand(base, nil)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.True(t, base.Equal(variants[0]))
}

func TestExpandCrossProductCount(t *testing.T) {
	t.Parallel()

	scans := []ScanGroup{
		{Label: "learning_rate", Params: []ScanParam{
			{Name: "learning_rate", Values: []any{0.001, 0.01, 0.1}},
		}},
		{Label: "beta", Params: []ScanParam{
			{Name: "beta", Values: []any{0.5, 2.0}},
		}},
	}

	variants, err := Expand(baseParams(), scans)
	require.NoError(t, err)
	assert.Len(t, variants, 6, "3 learning rates x 2 betas")
}

func TestExpandOrderingLastAxisFastest(t *testing.T) {
	t.Parallel()

	scans := []ScanGroup{
		{Label: "learning_rate", Params: []ScanParam{
			{Name: "learning_rate", Values: []any{0.001, 0.01}},
		}},
		{Label: "beta", Params: []ScanParam{
			{Name: "beta", Values: []any{1.0, 2.0}},
		}},
	}

	variants, err := Expand(baseParams(), scans)
	require.NoError(t, err)
	require.Len(t, variants, 4)

	want := [][2]float64{{0.001, 1.0}, {0.001, 2.0}, {0.01, 1.0}, {0.01, 2.0}}
	for i, v := range variants {
		lr, _ := v.Get("learning_rate")
		beta, _ := v.Get("beta")
		assert.Equal(t, want[i][0], lr, "variant %d learning_rate", i)
		assert.Equal(t, want[i][1], beta, "variant %d beta", i)
	}
}

func TestExpandLinkedGroupIsOneAxis(t *testing.T) {
	t.Parallel()

	scans := []ScanGroup{
		{Label: "lr_beta", Params: []ScanParam{
			{Name: "learning_rate", Values: []any{0.001, 0.01}},
			{Name: "beta", Values: []any{1.0, 2.0}},
		}},
	}

	variants, err := Expand(baseParams(), scans)
	require.NoError(t, err)
	require.Len(t, variants, 2, "linked parameters vary together, not combinatorially")

	lr, _ := variants[0].Get("learning_rate")
	beta, _ := variants[0].Get("beta")
	assert.Equal(t, 0.001, lr)
	assert.Equal(t, 1.0, beta)

	lr, _ = variants[1].Get("learning_rate")
	beta, _ = variants[1].Get("beta")
	assert.Equal(t, 0.01, lr)
	assert.Equal(t, 2.0, beta)
}

func TestExpandOnlyScannedKeysDiffer(t *testing.T) {
	t.Parallel()

	base := baseParams()
	scans := []ScanGroup{
		{Label: "beta", Params: []ScanParam{
			{Name: "beta", Values: []any{0.5, 2.0}},
		}},
	}

	variants, err := Expand(base, scans)
	require.NoError(t, err)

	for _, v := range variants {
		for _, key := range base.Keys() {
			if key == "beta" {
				continue
			}
			baseVal, _ := base.Get(key)
			gotVal, _ := v.Get(key)
			assert.Equal(t, baseVal, gotVal, "unscanned key %q must match base", key)
		}
	}
}

func TestExpandDoesNotMutateBase(t *testing.T) {
	t.Parallel()

	base := baseParams()
	snapshot := base.Clone()

	scans := []ScanGroup{
		{Label: "beta", Params: []ScanParam{
			{Name: "beta", Values: []any{0.5, 2.0}},
		}},
	}
	_, err := Expand(base, scans)
	require.NoError(t, err)
	assert.True(t, snapshot.Equal(base))
}

func TestExpandMismatchedLinkedLengths(t *testing.T) {
	t.Parallel()

	scans := []ScanGroup{
		{Label: "lr_beta", Params: []ScanParam{
			{Name: "learning_rate", Values: []any{0.001, 0.01}},
			{Name: "beta", Values: []any{1.0, 2.0, 4.0}},
		}},
	}

	_, err := Expand(baseParams(), scans)
	require.Error(t, err)

	var malformed *MalformedScanError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "lr_beta", malformed.Scan)
}

func TestExpandEmptyValueList(t *testing.T) {
	t.Parallel()

	scans := []ScanGroup{
		{Label: "beta", Params: []ScanParam{
			{Name: "beta", Values: nil},
		}},
	}

	_, err := Expand(baseParams(), scans)
	var malformed *MalformedScanError
	require.True(t, errors.As(err, &malformed))
}
