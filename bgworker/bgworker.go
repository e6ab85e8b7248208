// Package bgworker runs background work, such as TimedQueue ticks, on a shared pond pool.
package bgworker

import (
	"context"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-collections/logger"
	"go.uber.org/atomic"
)

const defaultWorkerCount = 10

var (
	workerCount = atomic.NewInt64(defaultWorkerCount) //nolint:gochecknoglobals
	initialized = atomic.NewBool(false)               //nolint:gochecknoglobals
	poolMutex   sync.Mutex                            //nolint:gochecknoglobals
	workerPool  pond.Pool                             //nolint:gochecknoglobals
)

// SetWorkerCount sets the size of the pool. It only has an effect before the first
// task is submitted and reports whether the new size was applied.
func SetWorkerCount(count int) bool {
	poolMutex.Lock()
	defer poolMutex.Unlock()

	if initialized.Load() || count <= 0 {
		return false
	}

	workerCount.Store(int64(count))

	return true
}

func getPool(ctx context.Context) pond.Pool { //nolint:ireturn
	poolMutex.Lock()
	defer poolMutex.Unlock()

	if workerPool == nil {
		count := int(workerCount.Load())

		logger.Get(ctx).Debug("Initializing background worker pool", "count", count)

		workerPool = pond.NewPool(count)
		initialized.Store(true)
	}

	return workerPool
}

// Submit submits a function to the background worker pool.
// It returns a Task that can be used to wait for the function to complete.
func Submit(ctx context.Context, f func()) pond.Task { //nolint:ireturn
	return getPool(ctx).Submit(f)
}

// Go submits a function to the background worker pool. It returns immediately.
// It returns an error if the pool is stopped.
func Go(ctx context.Context, f func()) error {
	return getPool(ctx).Go(f)
}

// Stop waits for running tasks to finish and stops the pool. Tasks submitted
// afterwards are rejected. Calling Stop before anything was submitted is a no-op.
func Stop(ctx context.Context) {
	poolMutex.Lock()
	pool := workerPool
	poolMutex.Unlock()

	if pool == nil {
		return
	}

	logger.Get(ctx).Debug("Stopping background worker pool")
	pool.StopAndWait()
	logger.Get(ctx).Debug("Background worker pool stopped")
}
