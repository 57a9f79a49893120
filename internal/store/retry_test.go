package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoffSucceedsAfterTransient(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoffPermanentError(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(func() error {
		attempts++
		return errors.New("UNIQUE constraint failed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, isRetryableError(errors.New("SQLITE_BUSY")))
	assert.False(t, isRetryableError(errors.New("no such table: cycles")))
}
