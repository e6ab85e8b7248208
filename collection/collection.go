// Package collection provides Collection, an insertion-ordered key/value container with an
// array-like transformation surface (Filter, Map, Reduce, Partition, Find, Sort, Some, Every)
// and the freeze/unfreeze immutability protocol.
//
// A Collection owns its storage and only exposes the operations below, so a frozen
// collection cannot be mutated through a side door.
//
// Single-value lookups (First, Find, Random, Shift, ...) return optional.Value and
// report a miss as optional.None. Collections are not thread-safe.
package collection

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"

	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/amp-labs/amp-collections/freeze"
	"github.com/amp-labs/amp-collections/maps"
	"github.com/amp-labs/amp-collections/tuple"
	"github.com/amp-labs/amp-collections/utils"
	"github.com/amp-labs/amp-collections/zero"
)

// Predicate receives a value, its position in insertion order and its key.
type Predicate[K cmp.Ordered, V any] func(value V, index int, key K) bool

// Collection is an insertion-ordered map from K to V. Keys are strings or numbers.
// The zero value is not usable, create collections with New or one of the From helpers.
type Collection[K cmp.Ordered, V any] struct {
	store *maps.Ordered[K, V]
	guard freeze.Guard
}

var _ freeze.Freezable[*Collection[string, int]] = (*Collection[string, int])(nil)

// New returns an empty, mutable collection.
func New[K cmp.Ordered, V any]() *Collection[K, V] {
	return &Collection[K, V]{
		store: maps.NewOrdered[K, V](),
		guard: freeze.NewGuard(errors2.KindCollection),
	}
}

// From builds a collection from seed data:
//   - nil gives an empty collection
//   - []V is keyed by position (0, 1, 2, ...)
//   - map[K]V is keyed by its own keys, in ascending key order
//   - []*tuple.Pair[K, V] and []maps.KeyValuePair[K, V] keep their order
//   - iter.Seq2[K, V] keeps the order it yields
//   - *Collection[K, V] is copied
//
// Anything else fails with errors.ErrUnsupportedSeed.
func From[K cmp.Ordered, V any](seed any) (*Collection[K, V], error) {
	switch src := seed.(type) {
	case nil:
		return New[K, V](), nil
	case []V:
		return FromSlice[K](src), nil
	case map[K]V:
		return FromMap(src), nil
	case []*tuple.Pair[K, V]:
		return FromPairs(src), nil
	case []maps.KeyValuePair[K, V]:
		coll := New[K, V]()
		for _, entry := range src {
			coll.store.Add(entry.Key, entry.Value)
		}

		return coll, nil
	case iter.Seq2[K, V]:
		return FromSeq(src), nil
	case func(func(K, V) bool):
		return FromSeq(src), nil
	case *Collection[K, V]:
		if src == nil {
			return New[K, V](), nil
		}

		return src.Unfreeze(), nil
	default:
		return nil, errors2.UnsupportedSeed(fmt.Sprintf("%T", seed))
	}
}

// FromSlice keys each value by its position in values.
//
// Example:
//
//	c := collection.FromSlice[int]([]string{"a", "b", "c"})
//	c.Get(1) // "b", true
func FromSlice[K cmp.Ordered, V any](values []V) *Collection[K, V] {
	coll := New[K, V]()
	for idx, value := range values {
		coll.store.Add(keyFromIndex[K](idx), value)
	}

	return coll
}

// FromMap copies m. Go maps have no order, so keys are inserted in ascending order.
func FromMap[K cmp.Ordered, V any](m map[K]V) *Collection[K, V] {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	coll := New[K, V]()
	for _, key := range keys {
		coll.store.Add(key, m[key])
	}

	return coll
}

// FromPairs inserts each pair in order; later pairs overwrite earlier ones with the same key.
func FromPairs[K cmp.Ordered, V any](pairs []*tuple.Pair[K, V]) *Collection[K, V] {
	coll := New[K, V]()
	for _, pair := range pairs {
		if pair == nil {
			continue
		}

		coll.store.Add(pair.First(), pair.Second())
	}

	return coll
}

// FromSeq inserts entries in the order seq yields them.
func FromSeq[K cmp.Ordered, V any](seq iter.Seq2[K, V]) *Collection[K, V] {
	coll := New[K, V]()
	for key, value := range seq {
		coll.store.Add(key, value)
	}

	return coll
}

// keyFromIndex converts a position into a key of type K. String keys use the decimal form.
func keyFromIndex[K cmp.Ordered](idx int) K {
	var key K

	rv := reflect.ValueOf(&key).Elem()

	switch rv.Kind() { //nolint:exhaustive // cmp.Ordered only admits these kinds
	case reflect.String:
		rv.SetString(strconv.Itoa(idx))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		rv.SetInt(int64(idx))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		rv.SetUint(uint64(idx)) //nolint:gosec // positions are never negative
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(float64(idx))
	}

	return key
}

// Get returns the value stored under key.
func (c *Collection[K, V]) Get(key K) (V, bool) {
	return c.store.Get(key)
}

func (c *Collection[K, V]) Has(key K) bool {
	return c.store.Contains(key)
}

func (c *Collection[K, V]) Size() int {
	return c.store.Size()
}

func (c *Collection[K, V]) Empty() bool {
	return c.store.Size() == 0
}

// Set inserts or overwrites key. An overwritten key keeps its position.
// Returns the collection so calls can be chained.
func (c *Collection[K, V]) Set(key K, value V) (*Collection[K, V], error) {
	if err := c.guard.Check("set"); err != nil {
		return c, err
	}

	c.store.Add(key, value)

	return c, nil
}

// Add inserts value under a key equal to the current size.
// If that key already exists (after a deletion, for example) it is overwritten.
func (c *Collection[K, V]) Add(value V) (*Collection[K, V], error) {
	if err := c.guard.Check("add"); err != nil {
		return c, err
	}

	c.store.Add(keyFromIndex[K](c.store.Size()), value)

	return c, nil
}

// Delete removes key and reports whether it was present.
func (c *Collection[K, V]) Delete(key K) (bool, error) {
	if err := c.guard.Check("delete"); err != nil {
		return false, err
	}

	return c.store.Remove(key), nil
}

// DeleteAll removes every entry.
func (c *Collection[K, V]) DeleteAll() error {
	if err := c.guard.Check("deleteAll"); err != nil {
		return err
	}

	c.store.Clear()

	return nil
}

// Emplace returns the value under key, inserting value first if the key is absent.
// Only the insert path requires the collection to be mutable.
func (c *Collection[K, V]) Emplace(key K, value V) (V, error) {
	return c.EmplaceFunc(key, func() V { return value })
}

// EmplaceFunc is Emplace with a lazily computed value; compute is only called on insert.
func (c *Collection[K, V]) EmplaceFunc(key K, compute func() V) (V, error) {
	if existing, ok := c.store.Get(key); ok {
		return existing, nil
	}

	if err := c.guard.Check("emplace"); err != nil {
		return zero.Value[V](), err
	}

	value := compute()
	c.store.Add(key, value)

	return value, nil
}

// Sweep deletes every entry matching predicate and returns how many were removed.
func (c *Collection[K, V]) Sweep(predicate Predicate[K, V]) (int, error) {
	if err := c.guard.Check("sweep"); err != nil {
		return 0, err
	}

	var doomed []K

	for idx, entry := range c.store.Seq() {
		if predicate(entry.Value, idx, entry.Key) {
			doomed = append(doomed, entry.Key)
		}
	}

	for _, key := range doomed {
		c.store.Remove(key)
	}

	return len(doomed), nil
}

// Merge returns a new collection holding the entries of c followed by the entries of each
// argument in order; later keys overwrite earlier ones but keep the earlier position.
// If any argument is frozen, nothing is merged and a *errors.MergeConflictError
// carrying the number of frozen arguments is returned.
func (c *Collection[K, V]) Merge(others ...*Collection[K, V]) (*Collection[K, V], error) {
	var (
		conflicts errors2.Collection
		stores    = make([]*maps.Ordered[K, V], 0, len(others))
	)

	for _, other := range others {
		if other == nil {
			continue
		}

		conflicts.Add(other.guard.Check("merge"))
		stores = append(stores, other.store)
	}

	if conflicts.HasError() {
		return nil, &errors2.MergeConflictError{
			Count: conflicts.Len(),
			Err:   conflicts.GetError(),
		}
	}

	return &Collection[K, V]{
		store: c.store.Union(stores...),
		guard: freeze.NewGuard(errors2.KindCollection),
	}, nil
}

// Freeze makes the collection reject all further mutation.
func (c *Collection[K, V]) Freeze() {
	c.guard.Freeze()
}

// Unfreeze returns a new mutable collection with a shallow copy of the entries.
func (c *Collection[K, V]) Unfreeze() *Collection[K, V] {
	return &Collection[K, V]{
		store: c.store.Clone(),
		guard: freeze.NewGuard(errors2.KindCollection),
	}
}

func (c *Collection[K, V]) Mutable() bool {
	return c.guard.Mutable()
}

// All yields (key, value) pairs in insertion order. Each range over it starts a fresh pass.
func (c *Collection[K, V]) All() iter.Seq2[K, V] {
	return c.store.All()
}

// Values returns the values in insertion order.
func (c *Collection[K, V]) Values() []V {
	return c.store.Values()
}

// ToArray is an alias of Values.
func (c *Collection[K, V]) ToArray() []V {
	return c.store.Values()
}

// Keys returns the keys in insertion order.
func (c *Collection[K, V]) Keys() []K {
	return c.store.Keys()
}

// ToKeyArray is an alias of Keys.
func (c *Collection[K, V]) ToKeyArray() []K {
	return c.store.Keys()
}

// ToObject copies the entries into a plain Go map. Order is lost.
func (c *Collection[K, V]) ToObject() map[K]V {
	out := make(map[K]V, c.store.Size())
	for key, value := range c.store.All() {
		out[key] = value
	}

	return out
}

// Entries returns one pair per entry, in insertion order.
func (c *Collection[K, V]) Entries() []*tuple.Pair[K, V] {
	out := make([]*tuple.Pair[K, V], 0, c.store.Size())
	for key, value := range c.store.All() {
		out = append(out, tuple.NewPair(key, value))
	}

	return out
}

// String describes the kinds of the stored values, e.g. "Collection<string | int>".
func (c *Collection[K, V]) String() string {
	return fmt.Sprintf("Collection<%s>", utils.DescribeKinds(c.store.Values()))
}
