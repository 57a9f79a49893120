package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcforge/qcmend/internal/models"
	"github.com/qcforge/qcmend/internal/qcio"
)

func setupSCFJob(t *testing.T, out *qcio.Output) (inputFile string, h *SCFHandler) {
	t.Helper()
	dir := t.TempDir()
	inputFile = filepath.Join(dir, "mol.qcin")
	require.NoError(t, os.WriteFile(inputFile, []byte(testDeckFile), 0600))

	h, err := NewSCFHandler(inputFile, filepath.Join(dir, "mol.qcout.json"), 0, 0, fakeParser{out: out})
	require.NoError(t, err)
	return inputFile, h
}

func TestNewSCFHandlerMissingDeck(t *testing.T) {
	_, err := NewSCFHandler(filepath.Join(t.TempDir(), "absent.qcin"), "out.json", 0, 0, nil)
	assert.Error(t, err)
}

func TestSCFHandlerAppliesDefaults(t *testing.T) {
	_, h := setupSCFJob(t, &qcio.Output{})
	assert.Equal(t, DefaultSCFMaxCycles, h.scfMax)
	assert.InDelta(t, DefaultRCAGDMThresh, h.thresh, 1e-12)
}

func TestSCFHandlerCheck(t *testing.T) {
	_, h := setupSCFJob(t, &qcio.Output{
		Errors: []models.ErrorTag{models.TagSCFFailedToConverge},
	})

	hasErrors, err := h.Check()
	require.NoError(t, err)
	assert.True(t, hasErrors)
	assert.Equal(t, []models.ErrorTag{models.TagSCFFailedToConverge}, h.Errors())
}

func TestSCFHandlerCorrectBeforeCheck(t *testing.T) {
	_, h := setupSCFJob(t, &qcio.Output{})
	_, err := h.Correct()
	assert.ErrorIs(t, err, models.ErrNoErrorsCaptured)
}

func TestSCFHandlerCorrectReportsWithoutActing(t *testing.T) {
	inputFile, h := setupSCFJob(t, &qcio.Output{
		Errors: []models.ErrorTag{models.TagSCFFailedToConverge},
	})
	before, err := os.ReadFile(inputFile)
	require.NoError(t, err)

	hasErrors, err := h.Check()
	require.NoError(t, err)
	require.True(t, hasErrors)

	c, err := h.Correct()
	require.NoError(t, err)
	assert.Equal(t, []models.ErrorTag{models.TagSCFFailedToConverge}, c.Errors)
	assert.Empty(t, c.Actions)
	assert.False(t, c.RerunAsIs)

	after, err := os.ReadFile(inputFile)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSCFHandlerIsPostMortem(t *testing.T) {
	_, h := setupSCFJob(t, &qcio.Output{})
	assert.False(t, h.Monitor())
}
