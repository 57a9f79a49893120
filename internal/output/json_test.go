package output

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessEnvelope(t *testing.T) {
	r := Success(map[string]int{"cycles": 3})
	assert.True(t, r.Success)
	assert.Equal(t, "v1", r.SchemaVersion)
	assert.Empty(t, r.Error)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"schema_version":"v1","success":true,"data":{"cycles":3}}`, string(b))
}

func TestErrorEnvelope(t *testing.T) {
	r := Error(errors.New("deck missing"))
	assert.False(t, r.Success)
	assert.Equal(t, "deck missing", r.Error)
	assert.Nil(t, r.Data)
}
