package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `db_path: /tmp/qcmend-test.db
input_file: water.qcin
output_file: water.qcout.json
scf_max_cycles: 150
geom_max_cycles: 75
rca_gdm_thresh: 0.0005
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s, err := loadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/qcmend-test.db", s.DBPath)
	assert.Equal(t, "water.qcin", s.InputFile)
	assert.Equal(t, "water.qcout.json", s.OutputFile)
	assert.Equal(t, 150, s.SCFMaxCycles)
	assert.Equal(t, 75, s.GeomMaxCycles)
	assert.InDelta(t, 0.0005, s.RCAGDMThresh, 1e-12)
}

func TestLoadSettingsFileMissing(t *testing.T) {
	_, err := loadSettingsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSettingsFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scf_max_cycles: [not an int"), 0600))

	_, err := loadSettingsFile(path)
	assert.Error(t, err)
}

func TestEnsureDBDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "qcmend.db")
	resolved, err := EnsureDBDir(dbPath)
	require.NoError(t, err)
	assert.Equal(t, dbPath, resolved)
	assert.DirExists(t, filepath.Dir(dbPath))
}

func TestDBPathOverride(t *testing.T) {
	SetDBPathOverride("")
	t.Cleanup(func() { SetDBPathOverride("") })

	override := filepath.Join(t.TempDir(), "override.db")
	SetDBPathOverride(override)

	path, err := GetDBPath()
	require.NoError(t, err)
	assert.Equal(t, override, path)

	path, source, err := ResolveDBPathDetailed()
	require.NoError(t, err)
	assert.Equal(t, override, path)
	assert.Equal(t, "cli(--db-path)", source)
}

func TestGetDBPathEnvOverride(t *testing.T) {
	SetDBPathOverride("")
	t.Cleanup(func() { SetDBPathOverride("") })

	envPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("QCMEND_DB_PATH", envPath)

	path, source, err := ResolveDBPathDetailed()
	require.NoError(t, err)
	assert.Equal(t, envPath, path)
	assert.Equal(t, "env(QCMEND_DB_PATH)", source)
}
