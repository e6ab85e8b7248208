package collection

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/amp-labs/amp-collections/maps"
	"github.com/amp-labs/amp-collections/optional"
)

// Filter returns, in insertion order, the values for which predicate returns true.
func (c *Collection[K, V]) Filter(predicate Predicate[K, V]) []V {
	results := make([]V, 0)

	for idx, entry := range c.store.Seq() {
		if predicate(entry.Value, idx, entry.Key) {
			results = append(results, entry.Value)
		}
	}

	return results
}

// FilterKeys is Filter returning keys instead of values.
func (c *Collection[K, V]) FilterKeys(predicate Predicate[K, V]) []K {
	results := make([]K, 0)

	for idx, entry := range c.store.Seq() {
		if predicate(entry.Value, idx, entry.Key) {
			results = append(results, entry.Key)
		}
	}

	return results
}

// MapValues applies fn to every entry and returns the results in insertion order.
// Use the package-level Map when the result type differs from V.
func (c *Collection[K, V]) MapValues(fn func(value V, index int, key K) V) []V {
	return Map(c, fn)
}

// Map applies fn to every entry of c and returns the results in insertion order.
//
// Example:
//
//	lengths := collection.Map(c, func(s string, _ int, _ string) int { return len(s) })
func Map[K cmp.Ordered, V any, S any](c *Collection[K, V], fn func(value V, index int, key K) S) []S {
	results := make([]S, 0, c.store.Size())

	for idx, entry := range c.store.Seq() {
		results = append(results, fn(entry.Value, idx, entry.Key))
	}

	return results
}

// Reduce folds the values in insertion order. With an initial value the fold starts from it;
// without one the first value is the seed and folding starts from the second.
// An empty collection with no initial value yields the zero value.
func (c *Collection[K, V]) Reduce(fn func(acc V, current V) V, initial ...V) V {
	values := c.store.Values()

	var acc V

	switch {
	case len(initial) > 0:
		acc = initial[0]
	case len(values) > 0:
		acc, values = values[0], values[1:]
	default:
		return acc
	}

	for _, value := range values {
		acc = fn(acc, value)
	}

	return acc
}

// ReduceTo folds the values of c into an accumulator of a different type, starting at initial.
func ReduceTo[K cmp.Ordered, V any, S any](c *Collection[K, V], fn func(acc S, current V) S, initial S) S {
	acc := initial
	for _, entry := range c.store.Seq() {
		acc = fn(acc, entry.Value)
	}

	return acc
}

// Partition splits c into two new collections: entries matching predicate and the rest.
// Keys stay paired with their values and relative order is kept on both sides.
func (c *Collection[K, V]) Partition(predicate Predicate[K, V]) (*Collection[K, V], *Collection[K, V]) {
	pass, fail := New[K, V](), New[K, V]()

	for idx, entry := range c.store.Seq() {
		if predicate(entry.Value, idx, entry.Key) {
			pass.store.Add(entry.Key, entry.Value)
		} else {
			fail.store.Add(entry.Key, entry.Value)
		}
	}

	return pass, fail
}

// Find returns the first value, in insertion order, matching predicate.
func (c *Collection[K, V]) Find(predicate func(value V) bool) optional.Value[V] {
	for _, entry := range c.store.Seq() {
		if predicate(entry.Value) {
			return optional.Some(entry.Value)
		}
	}

	return optional.None[V]()
}

// FindKey returns the key of the first value matching predicate.
func (c *Collection[K, V]) FindKey(predicate func(value V) bool) optional.Value[K] {
	for _, entry := range c.store.Seq() {
		if predicate(entry.Value) {
			return optional.Some(entry.Key)
		}
	}

	return optional.None[K]()
}

// FindLast scans the whole collection and returns the last value matching predicate.
func (c *Collection[K, V]) FindLast(predicate func(value V) bool) optional.Value[V] {
	return optional.Map(c.findLastEntry(predicate), func(e maps.KeyValuePair[K, V]) V { return e.Value })
}

// FindLastKey scans the whole collection and returns the key of the last value matching predicate.
func (c *Collection[K, V]) FindLastKey(predicate func(value V) bool) optional.Value[K] {
	return optional.Map(c.findLastEntry(predicate), func(e maps.KeyValuePair[K, V]) K { return e.Key })
}

func (c *Collection[K, V]) findLastEntry(predicate func(value V) bool) optional.Value[maps.KeyValuePair[K, V]] {
	found := optional.None[maps.KeyValuePair[K, V]]()

	for _, entry := range c.store.Seq() {
		if predicate(entry.Value) {
			found = optional.Some(entry)
		}
	}

	return found
}

// Some reports whether at least one value satisfies predicate. It stops at the first match.
func (c *Collection[K, V]) Some(predicate func(value V) bool) bool {
	for _, entry := range c.store.Seq() {
		if predicate(entry.Value) {
			return true
		}
	}

	return false
}

// SomeKeys reports whether at least one key satisfies predicate.
func (c *Collection[K, V]) SomeKeys(predicate func(key K) bool) bool {
	for _, entry := range c.store.Seq() {
		if predicate(entry.Key) {
			return true
		}
	}

	return false
}

// Every reports whether all values satisfy predicate. It stops at the first miss
// and is true for an empty collection.
func (c *Collection[K, V]) Every(predicate func(value V) bool) bool {
	for _, entry := range c.store.Seq() {
		if !predicate(entry.Value) {
			return false
		}
	}

	return true
}

// EveryKeys reports whether all keys satisfy predicate.
func (c *Collection[K, V]) EveryKeys(predicate func(key K) bool) bool {
	for _, entry := range c.store.Seq() {
		if !predicate(entry.Key) {
			return false
		}
	}

	return true
}

// Sort returns the values sorted by compare (stable). The collection itself is not reordered.
func (c *Collection[K, V]) Sort(compare func(a, b V) int) []V {
	values := c.store.Values()
	slices.SortStableFunc(values, compare)

	return values
}

// SortKeys returns the keys sorted by compare (stable); a nil compare sorts ascending.
// The collection itself is not reordered.
func (c *Collection[K, V]) SortKeys(compare func(a, b K) int) []K {
	if compare == nil {
		compare = cmp.Compare[K]
	}

	keys := c.store.Keys()
	slices.SortStableFunc(keys, compare)

	return keys
}

// Random returns a uniformly chosen value, or None when empty.
func (c *Collection[K, V]) Random() optional.Value[V] {
	size := c.store.Size()
	if size == 0 {
		return optional.None[V]()
	}

	entry, _ := c.store.At(rand.IntN(size)) //nolint:gosec // not security sensitive

	return optional.Some(entry.Value)
}
