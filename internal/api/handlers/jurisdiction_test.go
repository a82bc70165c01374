package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"ipo-exit-planner/internal/data"
)

func writePreset(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadCatalogMergesPresets(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "ma.yaml", `
jurisdiction:
  code: MA
  name: Massachusetts
  brackets:
    - threshold: 0
      rate: 0.05
`)
	writePreset(t, dir, "ny.yml", "jurisdiction:\n  code: ny\n  withholding_rate: 0.3\n")
	writePreset(t, dir, "broken.yaml", "jurisdiction: [\n")
	writePreset(t, dir, "nan.yaml", "jurisdiction:\n  code: XX\n  withholding_rate: .nan\n")
	writePreset(t, dir, "notes.txt", "not a preset")

	core, logs := observer.New(zap.WarnLevel)
	cat, err := LoadCatalog(dir, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, data.DefaultTable().Len()+1, cat.Table.Len())
	assert.Equal(t, "ma.yaml", cat.Source("MA"))
	assert.Equal(t, "ny.yml", cat.Source("ny"))
	assert.Equal(t, sourceBuiltin, cat.Source("CA"))

	ny, err := cat.Table.Get("NY")
	require.NoError(t, err)
	assert.Equal(t, "0.3", ny.WithholdingRate.String())
	assert.NotEmpty(t, ny.Brackets)

	require.Equal(t, 2, logs.FilterMessage("skipping jurisdiction preset").Len())
	assert.False(t, cat.Table.Has("XX"))
	assert.Equal(t, data.DefaultOrigin, cat.Origin)
	assert.Equal(t, data.DefaultDestination, cat.Destination)
}

func TestLoadCatalogMissingDir(t *testing.T) {
	cat, err := LoadCatalog(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Equal(t, data.DefaultTable().Len(), cat.Table.Len())
}

func TestLoadCatalogRejectsBadBrackets(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "xx.yaml", `
jurisdiction:
  code: XX
  brackets:
    - threshold: 100
      rate: 0.05
`)
	_, err := LoadCatalog(dir, nil)
	assert.Error(t, err)
}
