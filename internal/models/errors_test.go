package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	editable := []ErrorTag{
		TagSCFFailedToConverge,
		TagOutOfOptCycles,
		TagUnableToDetermineLambda,
		TagLinearDependentBasis,
		TagFailedToTransformCoords,
	}
	for _, tag := range editable {
		assert.Equal(t, RecoveryEdit, tag.Classify(), "tag %s", tag)
	}

	assert.Equal(t, RecoveryRerun, TagFailedToReadInput.Classify())
	assert.Equal(t, RecoveryRerun, TagIOError.Classify())

	assert.Equal(t, RecoveryManual, TagInputFileError.Classify())
	assert.Equal(t, RecoveryManual, TagCannotReadCharges.Classify())
	assert.Equal(t, RecoveryManual, TagUnknownError.Classify())
}

func TestClassifyUnrecognized(t *testing.T) {
	assert.Equal(t, RecoveryUnrecognized, ErrorTag("exploded_spectacularly").Classify())
	assert.False(t, ErrorTag("exploded_spectacularly").Known())
	assert.True(t, TagSCFFailedToConverge.Known())
}
