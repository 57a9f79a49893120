package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionMarshalSinglePair(t *testing.T) {
	b, err := json.Marshal(Action{Field: "max_scf_cycles", Value: 200})
	require.NoError(t, err)
	assert.JSONEq(t, `{"max_scf_cycles":200}`, string(b))
}

func TestActionUnmarshal(t *testing.T) {
	var a Action
	require.NoError(t, json.Unmarshal([]byte(`{"scf_algorithm":"rca_diis"}`), &a))
	assert.Equal(t, "scf_algorithm", a.Field)
	assert.Equal(t, "rca_diis", a.Value)

	err := json.Unmarshal([]byte(`{"a":1,"b":2}`), &a)
	assert.Error(t, err)
}

func TestCorrectionMarshalActions(t *testing.T) {
	c := Correction{
		Errors:  []ErrorTag{TagSCFFailedToConverge},
		Actions: []Action{{Field: "max_scf_cycles", Value: 200}},
	}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":["SCF_failed_to_converge"],"actions":[{"max_scf_cycles":200}]}`, string(b))
}

func TestCorrectionMarshalRerunSignal(t *testing.T) {
	c := Correction{Errors: []ErrorTag{TagIOError}, RerunAsIs: true}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":["IO_error"],"actions":"rerun job as-is"}`, string(b))
}

func TestCorrectionMarshalNoActions(t *testing.T) {
	c := Correction{Errors: []ErrorTag{TagInputFileError}}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"errors":["input_file_error"],"actions":null}`, string(b))
}

func TestCorrectionRoundTrip(t *testing.T) {
	cases := []Correction{
		{Errors: []ErrorTag{TagSCFFailedToConverge}, Actions: []Action{{Field: "scf_algorithm", Value: "rca_diis"}}},
		{Errors: []ErrorTag{TagFailedToReadInput}, RerunAsIs: true},
		{Errors: []ErrorTag{TagUnknownError}},
	}
	for _, in := range cases {
		b, err := json.Marshal(in)
		require.NoError(t, err)

		var out Correction
		require.NoError(t, json.Unmarshal(b, &out))
		assert.Equal(t, in.Errors, out.Errors)
		assert.Equal(t, in.RerunAsIs, out.RerunAsIs)
		assert.Len(t, out.Actions, len(in.Actions))
		for i, a := range in.Actions {
			assert.Equal(t, a.Field, out.Actions[i].Field)
		}
	}
}

func TestCorrectionUnmarshalRejectsUnknownSignal(t *testing.T) {
	var c Correction
	err := json.Unmarshal([]byte(`{"errors":[],"actions":"wing it"}`), &c)
	assert.Error(t, err)
}
