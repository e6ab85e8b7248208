package queue

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/amp-labs/amp-collections/bgworker"
	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/amp-labs/amp-collections/freeze"
	"github.com/amp-labs/amp-collections/logger"
	"github.com/amp-labs/amp-collections/optional"
	"github.com/amp-labs/amp-collections/utils"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

// TimedQueue drains itself on a timer. After Start it waits Options.Every, then
// repeatedly removes up to Options.ItemCount items from the front, hands them to
// the tick listeners and waits Options.Time. Once a check finds the queue empty
// it notifies the end listeners and goes back to idle.
//
// TimedQueue is safe for concurrent use. Tick and end listeners run on the
// background worker pool; start listeners run inside Start.
type TimedQueue[T comparable] struct {
	id   string
	opts Options

	mu      sync.Mutex
	items   []T
	run     *drainRun // nil while idle
	onStart []func()
	onTick  []func(items []T)
	onEnd   []func()

	guard   freeze.Guard
	started *atomic.Bool
}

// drainRun is one Start..Stop (or Start..end) cycle.
type drainRun struct {
	ctx    context.Context //nolint:containedctx
	cancel context.CancelFunc
	span   trace.Span

	mu    sync.Mutex
	timer *time.Timer
}

// after runs fn once delay has elapsed, unless the run is halted first.
func (r *drainRun) after(delay time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ctx.Err() != nil {
		return
	}

	r.timer = time.AfterFunc(delay, fn)
}

// halt disarms the pending timer and cancels the run context.
func (r *drainRun) halt() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}

	r.cancel()
}

var _ freeze.Freezable[*TimedQueue[string]] = (*TimedQueue[string])(nil)

// NewTimed returns an idle queue holding items. Options that are not given keep their defaults.
//
// Example:
//
//	q := queue.NewTimed([]string{"a", "b", "c"}, queue.WithItemCount(2), queue.WithEvery(0))
//	q.OnTick(func(batch []string) { send(batch) })
//	_ = q.Start(ctx)
func NewTimed[T comparable](items []T, opts ...Option) *TimedQueue[T] {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &TimedQueue[T]{
		id:      uuid.NewString(),
		opts:    options.normalized(),
		items:   slices.Clone(items),
		guard:   freeze.NewGuard(errors2.KindTimedQueue),
		started: atomic.NewBool(false),
	}
}

// ID returns the unique id given to the queue at construction.
func (q *TimedQueue[T]) ID() string {
	return q.id
}

// Name returns Options.Name, or the id when no name was set.
func (q *TimedQueue[T]) Name() string {
	if q.opts.Name != "" {
		return q.opts.Name
	}

	return q.id
}

// Options returns the effective options.
func (q *TimedQueue[T]) Options() Options {
	return q.opts
}

// Started reports whether a drain run is in progress.
func (q *TimedQueue[T]) Started() bool {
	return q.started.Load()
}

// OnStart registers fn to run every time Start succeeds.
func (q *TimedQueue[T]) OnStart(fn func()) *TimedQueue[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.onStart = append(q.onStart, fn)

	return q
}

// OnTick registers fn to receive every batch removed by a drain run.
func (q *TimedQueue[T]) OnTick(fn func(items []T)) *TimedQueue[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.onTick = append(q.onTick, fn)

	return q
}

// OnEnd registers fn to run when a drain run empties the queue. It is not called after Stop.
func (q *TimedQueue[T]) OnEnd(fn func()) *TimedQueue[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.onEnd = append(q.onEnd, fn)

	return q
}

// Start begins a drain run and returns at once. The waits between ticks are timers;
// only the ticks themselves run on the background worker pool.
// Cancelling ctx ends the run like Stop does. Starting a running queue fails
// with errors.ErrAlreadyStarted; starting a frozen queue fails with an *errors.ImmutabilityError.
func (q *TimedQueue[T]) Start(ctx context.Context) error {
	q.mu.Lock()

	if err := q.guard.Check("start"); err != nil {
		q.mu.Unlock()

		return err
	}

	if q.run != nil {
		q.mu.Unlock()

		return errors2.ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(logger.With(ctx, "queue", q.id, "name", q.Name()))
	runCtx, span := startRunSpan(runCtx, q.id, q.Name(), q.opts)
	run := &drainRun{ctx: runCtx, cancel: cancel, span: span}
	q.run = run
	q.started.Store(true)
	listeners := slices.Clone(q.onStart)

	q.mu.Unlock()

	context.AfterFunc(runCtx, func() { q.finish(run, outcomeStopped) })

	logger.Get(runCtx).Debug("Timed queue started", "every", q.opts.Every, "time", q.opts.Time)

	for _, fn := range listeners {
		q.notify(runCtx, "start", fn)
	}

	run.after(q.opts.Every, func() { q.schedule(run) })

	return nil
}

// Stop cancels the pending wait and ends the run without notifying end listeners.
// A batch that was already removed when Stop is called is still delivered.
// Stopping an idle queue fails with errors.ErrNotStarted.
func (q *TimedQueue[T]) Stop() error {
	q.mu.Lock()
	run := q.run
	q.mu.Unlock()

	if run == nil || !q.finish(run, outcomeStopped) {
		return errors2.ErrNotStarted
	}

	logger.Get(run.ctx).Debug("Timed queue stopped")

	return nil
}

// finish moves the queue back to idle if run is still the current run,
// then disarms its timer and closes its span.
func (q *TimedQueue[T]) finish(run *drainRun, outcome string) bool {
	q.mu.Lock()

	if q.run != run {
		q.mu.Unlock()

		return false
	}

	q.run = nil
	q.started.Store(false)

	q.mu.Unlock()

	run.halt()

	runsTotal.WithLabelValues(q.Name(), outcome).Inc()
	run.span.SetStatus(codes.Ok, outcome)
	run.span.End()

	return true
}

// schedule hands the next step of run to the worker pool.
func (q *TimedQueue[T]) schedule(run *drainRun) {
	if err := bgworker.Go(run.ctx, func() { q.step(run) }); err != nil {
		logger.Get(run.ctx).Error("Timed queue could not schedule a tick", "error", err)
		q.finish(run, outcomeStopped)
	}
}

// step takes one batch and either emits it and arms the next wait, or ends the run.
func (q *TimedQueue[T]) step(run *drainRun) {
	batch, remaining, current := q.take(run)
	if !current {
		return
	}

	if len(batch) == 0 {
		q.end(run)

		return
	}

	q.tick(run.ctx, batch, remaining)

	run.after(q.opts.Time, func() { q.schedule(run) })
}

// take removes the next batch. current is false when run has been stopped.
func (q *TimedQueue[T]) take(run *drainRun) (batch []T, remaining int, current bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.run != run {
		return nil, len(q.items), false
	}

	count := min(q.opts.ItemCount, len(q.items))
	batch = slices.Clone(q.items[:count])
	q.items = slices.Delete(q.items, 0, count)

	pendingItems.WithLabelValues(q.Name()).Set(float64(len(q.items)))

	return batch, len(q.items), true
}

func (q *TimedQueue[T]) tick(ctx context.Context, batch []T, remaining int) {
	ctx, span := startTickSpan(ctx, len(batch), remaining)
	defer span.End()

	ticksTotal.WithLabelValues(q.Name()).Inc()
	drainedItemsTotal.WithLabelValues(q.Name()).Add(float64(len(batch)))

	q.mu.Lock()
	listeners := slices.Clone(q.onTick)
	q.mu.Unlock()

	for _, fn := range listeners {
		q.notify(ctx, "tick", func() { fn(slices.Clone(batch)) })
	}
}

func (q *TimedQueue[T]) end(run *drainRun) {
	if !q.finish(run, outcomeDrained) {
		return
	}

	logger.Get(run.ctx).Debug("Timed queue drained")

	q.mu.Lock()
	listeners := slices.Clone(q.onEnd)
	q.mu.Unlock()

	for _, fn := range listeners {
		q.notify(run.ctx, "end", fn)
	}
}

// notify runs one listener. A panicking listener is logged and does not stop the run.
func (q *TimedQueue[T]) notify(ctx context.Context, event string, fn func()) {
	if err := utils.CallSafely(fn); err != nil {
		listenerPanicsTotal.WithLabelValues(q.Name(), event).Inc()
		logger.Get(ctx).Error("Timed queue listener panicked", "event", event, "error", err)
	}
}

// Add appends item to the back of the queue. It may be called while a run is in progress.
func (q *TimedQueue[T]) Add(item T) error {
	return q.mutate("add", func() error {
		q.items = append(q.items, item)

		return nil
	})
}

// AddAll appends items in order.
func (q *TimedQueue[T]) AddAll(items ...T) error {
	return q.mutate("addAll", func() error {
		q.items = append(q.items, items...)

		return nil
	})
}

// Remove deletes the first occurrence of item and reports whether one was found.
func (q *TimedQueue[T]) Remove(item T) (bool, error) {
	var removed bool

	err := q.mutate("remove", func() error {
		q.items, removed = utils.Remove(q.items, item)

		return nil
	})

	return removed, err
}

// RemoveAt deletes and returns the item at index.
func (q *TimedQueue[T]) RemoveAt(index int) (T, error) {
	var removed T

	err := q.mutate("removeAt", func() error {
		var err error

		q.items, removed, err = utils.RemoveAt(q.items, index)

		return err
	})

	return removed, err
}

// Clear drops every pending item.
func (q *TimedQueue[T]) Clear() error {
	return q.mutate("clear", func() error {
		q.items = nil

		return nil
	})
}

func (q *TimedQueue[T]) mutate(op string, fn func() error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.guard.Check(op); err != nil {
		return err
	}

	if err := fn(); err != nil {
		return err
	}

	pendingItems.WithLabelValues(q.Name()).Set(float64(len(q.items)))

	return nil
}

func (q *TimedQueue[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

func (q *TimedQueue[T]) Empty() bool {
	return q.Size() == 0
}

// Get returns the item at index, or None when out of range.
func (q *TimedQueue[T]) Get(index int) optional.Value[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return optional.None[T]()
	}

	return optional.Some(q.items[index])
}

func (q *TimedQueue[T]) Includes(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return slices.Contains(q.items, item)
}

// ToArray returns a copy of the pending items, front first.
func (q *TimedQueue[T]) ToArray() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	return slices.Clone(q.items)
}

// Freeze makes the queue immutable. A run in progress is stopped, since draining mutates the queue.
func (q *TimedQueue[T]) Freeze() {
	q.mu.Lock()
	q.guard.Freeze()
	q.mu.Unlock()

	_ = q.Stop()
}

// Unfreeze returns a new, idle, mutable queue with a copy of the pending items and
// the same options. Listeners are not copied and the new queue gets its own id.
func (q *TimedQueue[T]) Unfreeze() *TimedQueue[T] {
	return NewTimed(q.ToArray(), WithOptions(q.opts))
}

func (q *TimedQueue[T]) Mutable() bool {
	return q.guard.Mutable()
}

// String describes the kinds of the pending items, e.g. "TimedQueue<string>".
func (q *TimedQueue[T]) String() string {
	return fmt.Sprintf("TimedQueue<%s>", utils.DescribeKinds(q.ToArray()))
}
