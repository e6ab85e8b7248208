package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmutabilityError(t *testing.T) {
	t.Parallel()

	t.Run("matches the sentinel", func(t *testing.T) {
		t.Parallel()

		err := Immutable(KindCollection, "set")

		require.ErrorIs(t, err, ErrImmutable)
		assert.NotErrorIs(t, err, ErrMergeConflict)
	})

	t.Run("carries kind and operation", func(t *testing.T) {
		t.Parallel()

		var target *ImmutabilityError

		require.ErrorAs(t, Immutable(KindTimedQueue, "add"), &target)
		assert.Equal(t, KindTimedQueue, target.Kind)
		assert.Equal(t, "add", target.Op)
		assert.Equal(t, "TimedQueue is immutable, values cannot be changed. (Called by TimedQueue#add)", target.Error())
	})
}

func TestMergeConflictError(t *testing.T) {
	t.Parallel()

	inner := Immutable(KindCollection, "merge")
	err := &MergeConflictError{Count: 2, Err: inner}

	require.ErrorIs(t, err, ErrMergeConflict)
	require.ErrorIs(t, err, ErrImmutable)
	assert.Equal(t, "2 collections cannot be merged due to some being immutable", err.Error())
}

func TestWrappedSentinels(t *testing.T) {
	t.Parallel()

	err := UnsupportedSeed("int")
	require.ErrorIs(t, err, ErrUnsupportedSeed)
	assert.Contains(t, err.Error(), "received int")

	err = IndexOutOfRange(7, 3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "index 7")
}

func TestCollection_Add(t *testing.T) {
	t.Parallel()

	t.Run("adds non-nil errors", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(errors.New("error 1")) //nolint:err113
		c.Add(errors.New("error 2")) //nolint:err113

		assert.True(t, c.HasError())
		assert.Equal(t, 2, c.Len())
	})

	t.Run("ignores nil errors", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(nil)

		assert.False(t, c.HasError())
		assert.Equal(t, 0, c.Len())
	})
}

func TestCollection_GetError(t *testing.T) {
	t.Parallel()

	t.Run("returns nil when empty", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		require.NoError(t, c.GetError())
	})

	t.Run("returns single error", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		err := errors.New("only") //nolint:err113
		c.Add(err)

		assert.Equal(t, err, c.GetError())
	})

	t.Run("returns joined errors for multiple errors", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		err1 := Immutable(KindCollection, "merge")
		err2 := errors.New("second") //nolint:err113

		c.Add(err1)
		c.Add(err2)

		joined := c.GetError()
		require.ErrorIs(t, joined, ErrImmutable)
		require.ErrorIs(t, joined, err2)
	})

	t.Run("returns nil after clear", func(t *testing.T) {
		t.Parallel()

		c := &Collection{}
		c.Add(errors.New("gone")) //nolint:err113
		c.Clear()

		require.NoError(t, c.GetError())
		assert.False(t, c.HasError())
	})
}
