// Package queue provides Queue, an ordered sequence that can be drained from either end,
// and TimedQueue, which drains itself in batches on a timer.
//
// Both take part in the freeze protocol: a frozen queue still answers reads but every
// mutation, draining included, fails with an *errors.ImmutabilityError.
package queue

import (
	"context"
	"fmt"
	"iter"

	"github.com/amp-labs/amp-collections/collection"
	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/amp-labs/amp-collections/freeze"
	"github.com/amp-labs/amp-collections/optional"
	"github.com/amp-labs/amp-collections/utils"
	"github.com/amp-labs/amp-collections/zero"
	"github.com/emirpasic/gods/v2/lists/arraylist"
)

// Queue is an ordered list of items. Duplicates are allowed.
// Queue is not thread-safe.
type Queue[T comparable] struct {
	items       *arraylist.List[T]
	guard       freeze.Guard
	deprecation utils.DeprecationHandler
}

var _ freeze.Freezable[*Queue[string]] = (*Queue[string])(nil)

// New returns a mutable queue holding items, front first.
func New[T comparable](items ...T) *Queue[T] {
	return &Queue[T]{
		items: arraylist.New[T](items...),
		guard: freeze.NewGuard(errors2.KindQueue),
	}
}

// From builds a queue from a []T, an iter.Seq[T] or another *Queue[T].
// nil gives an empty queue; anything else fails with errors.ErrUnsupportedSeed.
func From[T comparable](seed any) (*Queue[T], error) {
	switch src := seed.(type) {
	case nil:
		return New[T](), nil
	case []T:
		return New(src...), nil
	case iter.Seq[T]:
		return fromSeq(src), nil
	case func(func(T) bool):
		return fromSeq(src), nil
	case *Queue[T]:
		if src == nil {
			return New[T](), nil
		}

		return src.Unfreeze(), nil
	default:
		return nil, errors2.UnsupportedSeed(fmt.Sprintf("%T", seed))
	}
}

func fromSeq[T comparable](seq iter.Seq[T]) *Queue[T] {
	q := New[T]()
	for item := range seq {
		q.items.Add(item)
	}

	return q
}

// OnDeprecation routes notices from the legacy methods (Enqueue, Peek, PeekAt) of this queue to handler.
func (q *Queue[T]) OnDeprecation(handler utils.DeprecationHandler) *Queue[T] {
	q.deprecation = handler

	return q
}

// Add appends item to the back of the queue.
func (q *Queue[T]) Add(item T) error {
	if err := q.guard.Check("add"); err != nil {
		return err
	}

	q.items.Add(item)

	return nil
}

// AddAll appends items in order.
func (q *Queue[T]) AddAll(items ...T) error {
	if err := q.guard.Check("addAll"); err != nil {
		return err
	}

	q.items.Add(items...)

	return nil
}

// Remove deletes the first occurrence of item and reports whether one was found.
func (q *Queue[T]) Remove(item T) (bool, error) {
	if err := q.guard.Check("remove"); err != nil {
		return false, err
	}

	idx := q.items.IndexOf(item)
	if idx < 0 {
		return false, nil
	}

	q.items.Remove(idx)

	return true, nil
}

// RemoveAt deletes and returns the item at index.
func (q *Queue[T]) RemoveAt(index int) (T, error) {
	if err := q.guard.Check("removeAt"); err != nil {
		return zero.Value[T](), err
	}

	item, ok := q.items.Get(index)
	if !ok {
		return zero.Value[T](), errors2.IndexOutOfRange(index, q.items.Size())
	}

	q.items.Remove(index)

	return item, nil
}

// Get returns the item at the 0-based index, or None when out of range.
func (q *Queue[T]) Get(index int) optional.Value[T] {
	item, ok := q.items.Get(index)

	return optional.Of(item, ok)
}

// First returns the front item without removing it.
func (q *Queue[T]) First() optional.Value[T] {
	return q.Get(0)
}

// Last returns the back item without removing it.
func (q *Queue[T]) Last() optional.Value[T] {
	return q.Get(q.items.Size() - 1)
}

// Shift removes and returns the front item.
func (q *Queue[T]) Shift() (optional.Value[T], error) {
	return q.takeAt(0, "shift")
}

// Pop removes and returns the back item.
func (q *Queue[T]) Pop() (optional.Value[T], error) {
	return q.takeAt(q.items.Size()-1, "pop")
}

func (q *Queue[T]) takeAt(index int, op string) (optional.Value[T], error) {
	if err := q.guard.Check(op); err != nil {
		return optional.None[T](), err
	}

	item, ok := q.items.Get(index)
	if !ok {
		return optional.None[T](), nil
	}

	q.items.Remove(index)

	return optional.Some(item), nil
}

// Tick calls fn once for every item, front to back, then empties the queue.
// Draining is a mutation, so a frozen queue refuses it without calling fn.
func (q *Queue[T]) Tick(fn func(item T)) error {
	if err := q.guard.Check("tick"); err != nil {
		return err
	}

	for _, item := range q.items.Values() {
		fn(item)
	}

	q.items.Clear()

	return nil
}

// Includes reports whether item is in the queue.
func (q *Queue[T]) Includes(item T) bool {
	return q.items.Contains(item)
}

func (q *Queue[T]) Size() int {
	return q.items.Size()
}

func (q *Queue[T]) Empty() bool {
	return q.items.Empty()
}

// ToArray returns a copy of the items, front first.
func (q *Queue[T]) ToArray() []T {
	return q.items.Values()
}

// ToCollection returns a new collection keyed by position.
func (q *Queue[T]) ToCollection() *collection.Collection[int, T] {
	return collection.FromSlice[int](q.items.Values())
}

// All yields the items front to back. Each range over it iterates a snapshot
// taken when that range starts.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.items.Values() {
			if !yield(item) {
				return
			}
		}
	}
}

func (q *Queue[T]) Freeze() {
	q.guard.Freeze()
}

// Unfreeze returns a new mutable queue with a copy of the items.
// The deprecation handler carries over.
func (q *Queue[T]) Unfreeze() *Queue[T] {
	thawed := New(q.items.Values()...)
	thawed.deprecation = q.deprecation

	return thawed
}

func (q *Queue[T]) Mutable() bool {
	return q.guard.Mutable()
}

// String describes the kinds of the queued items, e.g. "Queue<string>".
func (q *Queue[T]) String() string {
	return fmt.Sprintf("Queue<%s>", utils.DescribeKinds(q.items.Values()))
}

// Enqueue appends item.
//
// Deprecated: use Add.
func (q *Queue[T]) Enqueue(item T) error {
	utils.Deprecate(context.Background(), q.deprecation, "Queue.Enqueue", "Queue.Add")

	return q.Add(item)
}

// Peek returns the back item.
//
// Deprecated: use Last.
func (q *Queue[T]) Peek() optional.Value[T] {
	utils.Deprecate(context.Background(), q.deprecation, "Queue.Peek", "Queue.Last")

	return q.Last()
}

// PeekAt returns the item at index.
//
// Deprecated: use Get.
func (q *Queue[T]) PeekAt(index int) optional.Value[T] {
	utils.Deprecate(context.Background(), q.deprecation, "Queue.PeekAt", "Queue.Get")

	return q.Get(index)
}
