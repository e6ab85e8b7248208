package utils

import (
	"errors"
	"testing"

	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	t.Run("nil value", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, PanicError(nil, nil))
	})

	t.Run("error value stays matchable", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom") //nolint:err113
		err := PanicError(cause, nil)

		require.ErrorIs(t, err, errors2.ErrPanicRecovery)
		require.ErrorIs(t, err, cause)
	})

	t.Run("other values are formatted", func(t *testing.T) {
		t.Parallel()

		err := PanicError(42, []byte("goroutine 1 [running]"))

		require.ErrorIs(t, err, errors2.ErrPanicRecovery)
		assert.Contains(t, err.Error(), "42")
		assert.Contains(t, err.Error(), "stack trace:")
		assert.Contains(t, err.Error(), "goroutine 1")
	})
}

func TestCallSafely(t *testing.T) {
	t.Parallel()

	called := false

	require.NoError(t, CallSafely(func() { called = true }))
	assert.True(t, called)

	err := CallSafely(func() { panic("listener failed") })
	require.ErrorIs(t, err, errors2.ErrPanicRecovery)
	assert.Contains(t, err.Error(), "listener failed")
	assert.Contains(t, err.Error(), "stack trace:")
}
