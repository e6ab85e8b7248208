package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	pollAt  = 5 * time.Millisecond
)

// recorder collects the events of one TimedQueue.
type recorder[T comparable] struct {
	mu     sync.Mutex
	starts int
	ticks  [][]T
	ends   int
	ended  chan struct{}
}

func record[T comparable](q *TimedQueue[T]) *recorder[T] {
	rec := &recorder[T]{ended: make(chan struct{}, 1)}

	q.OnStart(func() {
		rec.mu.Lock()
		defer rec.mu.Unlock()

		rec.starts++
	})
	q.OnTick(func(items []T) {
		rec.mu.Lock()
		defer rec.mu.Unlock()

		rec.ticks = append(rec.ticks, items)
	})
	q.OnEnd(func() {
		rec.mu.Lock()
		rec.ends++
		rec.mu.Unlock()

		rec.ended <- struct{}{}
	})

	return rec
}

func (r *recorder[T]) snapshot() (int, [][]T, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticks := make([][]T, len(r.ticks))
	copy(ticks, r.ticks)

	return r.starts, ticks, r.ends
}

func (r *recorder[T]) waitEnd(t *testing.T) {
	t.Helper()

	select {
	case <-r.ended:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for the end event")
	}
}

func TestTimedQueueDrainsOneByOne(t *testing.T) {
	t.Parallel()

	q := NewTimed([]string{"a", "b", "c"}, WithEvery(0), WithTime(time.Millisecond))
	rec := record(q)

	require.NoError(t, q.Start(t.Context()))
	rec.waitEnd(t)

	starts, ticks, ends := rec.snapshot()
	assert.Equal(t, 1, starts)
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, ticks)
	assert.Equal(t, 1, ends)
	assert.True(t, q.Empty())

	require.Eventually(t, func() bool { return !q.Started() }, waitFor, pollAt)
}

func TestTimedQueueBatches(t *testing.T) {
	t.Parallel()

	q := NewTimed([]int{1, 2, 3, 4, 5}, WithItemCount(2), WithEvery(0), WithTime(time.Millisecond))
	rec := record(q)

	require.NoError(t, q.Start(t.Context()))
	rec.waitEnd(t)

	_, ticks, _ := rec.snapshot()
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, ticks)
}

func TestTimedQueueEmptyEndsWithoutTicks(t *testing.T) {
	t.Parallel()

	q := NewTimed[int](nil, WithEvery(0))
	rec := record(q)

	require.NoError(t, q.Start(t.Context()))
	rec.waitEnd(t)

	starts, ticks, ends := rec.snapshot()
	assert.Equal(t, 1, starts)
	assert.Empty(t, ticks)
	assert.Equal(t, 1, ends)
}

func TestTimedQueueStartTwice(t *testing.T) {
	t.Parallel()

	q := NewTimed([]int{1}, WithEvery(time.Hour))

	require.NoError(t, q.Start(t.Context()))
	assert.True(t, q.Started())
	require.ErrorIs(t, q.Start(t.Context()), errors2.ErrAlreadyStarted)
	require.NoError(t, q.Stop())
}

func TestTimedQueueStop(t *testing.T) {
	t.Parallel()

	t.Run("stop before the first tick", func(t *testing.T) {
		t.Parallel()

		q := NewTimed([]int{1, 2}, WithEvery(time.Hour))
		rec := record(q)

		require.NoError(t, q.Start(t.Context()))
		require.NoError(t, q.Stop())
		assert.False(t, q.Started())

		time.Sleep(20 * time.Millisecond)

		starts, ticks, ends := rec.snapshot()
		assert.Equal(t, 1, starts)
		assert.Empty(t, ticks)
		assert.Zero(t, ends, "stop does not emit end")
		assert.Equal(t, 2, q.Size())
	})

	t.Run("stop while idle", func(t *testing.T) {
		t.Parallel()

		q := NewTimed([]int{1})
		require.ErrorIs(t, q.Stop(), errors2.ErrNotStarted)
	})

	t.Run("restart after stop", func(t *testing.T) {
		t.Parallel()

		q := NewTimed([]int{1}, WithEvery(time.Hour))
		require.NoError(t, q.Start(t.Context()))
		require.NoError(t, q.Stop())
		require.NoError(t, q.Start(t.Context()))
		require.NoError(t, q.Stop())
		require.ErrorIs(t, q.Stop(), errors2.ErrNotStarted)
	})

	t.Run("stop from a tick listener", func(t *testing.T) {
		t.Parallel()

		q := NewTimed([]int{1, 2, 3}, WithEvery(0), WithTime(time.Millisecond))
		ticked := make(chan struct{}, 3)

		q.OnTick(func([]int) {
			_ = q.Stop()
			ticked <- struct{}{}
		})

		require.NoError(t, q.Start(t.Context()))

		select {
		case <-ticked:
		case <-time.After(waitFor):
			t.Fatal("timed out waiting for a tick")
		}

		require.Eventually(t, func() bool { return !q.Started() }, waitFor, pollAt)
		time.Sleep(20 * time.Millisecond)
		assert.Len(t, ticked, 0)
		assert.Equal(t, []int{2, 3}, q.ToArray())
	})
}

func TestTimedQueueAddWhileRunning(t *testing.T) {
	t.Parallel()

	q := NewTimed([]int{1}, WithEvery(0), WithTime(10*time.Millisecond))
	rec := record(q)

	q.OnTick(func(items []int) {
		if items[0] == 1 {
			_ = q.Add(2)
		}
	})

	require.NoError(t, q.Start(t.Context()))
	rec.waitEnd(t)

	_, ticks, _ := rec.snapshot()
	assert.Equal(t, [][]int{{1}, {2}}, ticks)
}

func TestTimedQueueMutations(t *testing.T) {
	t.Parallel()

	q := NewTimed([]string{"a", "b", "a"})

	require.NoError(t, q.Add("c"))
	require.NoError(t, q.AddAll("d", "e"))

	removed, err := q.Remove("a")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, q.ToArray())

	item, err := q.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, "b", item)

	_, err = q.RemoveAt(10)
	require.ErrorIs(t, err, errors2.ErrIndexOutOfRange)

	assert.Equal(t, "a", q.Get(0).GetOrPanic())
	assert.True(t, q.Get(10).Empty())
	assert.True(t, q.Includes("e"))

	require.NoError(t, q.Clear())
	assert.True(t, q.Empty())
}

func TestTimedQueueFreeze(t *testing.T) {
	t.Parallel()

	q := NewTimed([]string{"a", "b"}, WithItemCount(2), WithTime(time.Second), WithName("frozen"))
	q.Freeze()

	assert.False(t, q.Mutable())
	require.ErrorIs(t, q.Add("c"), errors2.ErrImmutable)
	require.ErrorIs(t, q.AddAll("c"), errors2.ErrImmutable)
	require.ErrorIs(t, q.Clear(), errors2.ErrImmutable)

	_, err := q.Remove("a")
	require.ErrorIs(t, err, errors2.ErrImmutable)

	_, err = q.RemoveAt(0)
	require.ErrorIs(t, err, errors2.ErrImmutable)

	var immutable *errors2.ImmutabilityError

	require.ErrorAs(t, q.Start(t.Context()), &immutable)
	assert.Equal(t, errors2.KindTimedQueue, immutable.Kind)
	assert.Equal(t, "start", immutable.Op)

	assert.Equal(t, []string{"a", "b"}, q.ToArray())

	thawed := q.Unfreeze()
	assert.True(t, thawed.Mutable())
	assert.False(t, thawed.Started())
	assert.NotEqual(t, q.ID(), thawed.ID())
	assert.Equal(t, q.Options(), thawed.Options())
	require.NoError(t, thawed.Add("c"))
	assert.Equal(t, 2, q.Size())
}

func TestTimedQueueFreezeStopsRun(t *testing.T) {
	t.Parallel()

	q := NewTimed([]int{1}, WithEvery(time.Hour))

	require.NoError(t, q.Start(t.Context()))
	q.Freeze()

	assert.False(t, q.Started())
	assert.Equal(t, 1, q.Size())
}

func TestTimedQueueContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	q := NewTimed([]int{1}, WithEvery(time.Hour))

	require.NoError(t, q.Start(ctx))
	cancel()

	require.Eventually(t, func() bool { return !q.Started() }, waitFor, pollAt)
	require.ErrorIs(t, q.Stop(), errors2.ErrNotStarted)
}

func TestTimedQueueListenerPanic(t *testing.T) {
	t.Parallel()

	q := NewTimed([]int{1, 2}, WithEvery(0), WithTime(time.Millisecond), WithName("panicky"))
	q.OnTick(func([]int) { panic("listener failed") })
	rec := record(q)

	require.NoError(t, q.Start(t.Context()))
	rec.waitEnd(t)

	_, ticks, _ := rec.snapshot()
	assert.Len(t, ticks, 2)
	assert.InDelta(t, 2, testutil.ToFloat64(listenerPanicsTotal.WithLabelValues("panicky", "tick")), 0)
}

func TestTimedQueueMetrics(t *testing.T) {
	t.Parallel()

	q := NewTimed([]int{1, 2, 3}, WithItemCount(2), WithEvery(0), WithTime(time.Millisecond), WithName("metrics-test"))
	rec := record(q)

	require.NoError(t, q.Start(t.Context()))
	rec.waitEnd(t)

	assert.InDelta(t, 2, testutil.ToFloat64(ticksTotal.WithLabelValues("metrics-test")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(drainedItemsTotal.WithLabelValues("metrics-test")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(pendingItems.WithLabelValues("metrics-test")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(runsTotal.WithLabelValues("metrics-test", outcomeDrained)), 0)
}

func TestTimedQueueDefaults(t *testing.T) {
	t.Parallel()

	q := NewTimed([]string{"x"}, WithItemCount(0), WithEvery(-time.Second))

	assert.Equal(t, 1, q.Options().ItemCount)
	assert.Zero(t, q.Options().Every)
	assert.Equal(t, DefaultTime, q.Options().Time)
	assert.Equal(t, q.ID(), q.Name())
	assert.Equal(t, "TimedQueue<string>", q.String())
}

func TestTimedQueueWaitDoesNotHoldWorker(t *testing.T) {
	t.Parallel()

	slow := NewTimed([]int{1, 2, 3}, WithEvery(0), WithTime(time.Hour))
	slowTicked := make(chan struct{}, 1)

	slow.OnTick(func([]int) {
		select {
		case slowTicked <- struct{}{}:
		default:
		}
	})

	require.NoError(t, slow.Start(t.Context()))

	t.Cleanup(func() { _ = slow.Stop() })

	select {
	case <-slowTicked:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for the first tick of the slow queue")
	}

	fast := NewTimed([]string{"x"}, WithEvery(0), WithTime(0))
	rec := record(fast)

	require.NoError(t, fast.Start(t.Context()))
	rec.waitEnd(t)

	_, ticks, _ := rec.snapshot()
	assert.Equal(t, [][]string{{"x"}}, ticks)
	assert.True(t, slow.Started())
	assert.Equal(t, 2, slow.Size())
}

func TestTimedQueueFreezeRacingStart(t *testing.T) {
	t.Parallel()

	for range 200 {
		q := NewTimed([]int{1}, WithEvery(time.Hour))

		var wg sync.WaitGroup

		wg.Add(2)

		go func() {
			defer wg.Done()

			_ = q.Start(t.Context())
		}()

		go func() {
			defer wg.Done()

			q.Freeze()
		}()

		wg.Wait()

		require.False(t, q.Started(), "a frozen queue must not be left running")
		require.ErrorIs(t, q.Start(t.Context()), errors2.ErrImmutable)
	}
}
