package qcio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcforge/qcmend/internal/models"
)

func TestJSONOutputParser(t *testing.T) {
	content := `{
		"errors": ["SCF_failed_to_converge"],
		"energy_trajectory": [-76.1, -76.3],
		"molecule_from_last_geometry": {
			"charge": 0,
			"spin_multiplicity": 1,
			"atoms": [{"species": "O", "coords": [0, 0, 0.1]}]
		}
	}`
	path := filepath.Join(t.TempDir(), "mol.qcout.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	out, err := JSONOutputParser{}.Parse(path)
	require.NoError(t, err)
	assert.Equal(t, []models.ErrorTag{models.TagSCFFailedToConverge}, out.Errors)
	assert.Len(t, out.EnergyTrajectory, 2)
	require.NotNil(t, out.MoleculeFromLastGeometry)
	assert.Equal(t, 1, out.MoleculeFromLastGeometry.SpinMultiplicity)
}

func TestJSONOutputParserMissingFile(t *testing.T) {
	_, err := JSONOutputParser{}.Parse(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestJSONOutputParserMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mol.qcout.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))
	_, err := JSONOutputParser{}.Parse(path)
	assert.Error(t, err)
}

func TestJSONOutputParserCleanRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mol.qcout.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"errors":[],"energy_trajectory":[-76.4]}`), 0600))

	out, err := JSONOutputParser{}.Parse(path)
	require.NoError(t, err)
	assert.Empty(t, out.Errors)
	assert.Nil(t, out.MoleculeFromLastGeometry)
}
