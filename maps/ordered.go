// Package maps holds the insertion-ordered storage used by collection.Collection.
package maps

import (
	"iter"
	"slices"
)

// Ordered is the insertion-ordered storage behind collection.Collection. It keeps a Go map
// for O(1) lookups next to a slice of keys that records the order in which keys were first added.
//
// Overwriting an existing key keeps its original position. Removing a key is O(n)
// because the key has to be cut out of the order slice.
//
// Ordered is not thread-safe.
type Ordered[K comparable, V any] struct {
	orderedKeys []K     // keys in insertion order
	data        map[K]V // key -> value
}

// NewOrdered returns an empty ordered map.
func NewOrdered[K comparable, V any]() *Ordered[K, V] {
	return &Ordered[K, V]{
		data: make(map[K]V),
	}
}

// Get returns the value stored under key and whether it was present.
func (o *Ordered[K, V]) Get(key K) (V, bool) {
	value, ok := o.data[key]

	return value, ok
}

func (o *Ordered[K, V]) Contains(key K) bool {
	_, ok := o.data[key]

	return ok
}

// Add inserts or overwrites key. It reports true if the key was new,
// in which case it is appended to the end of the insertion order.
func (o *Ordered[K, V]) Add(key K, value V) bool {
	_, exists := o.data[key]
	if !exists {
		o.orderedKeys = append(o.orderedKeys, key)
	}

	o.data[key] = value

	return !exists
}

// Remove deletes key and reports whether it was present.
func (o *Ordered[K, V]) Remove(key K) bool {
	if _, ok := o.data[key]; !ok {
		return false
	}

	if idx := slices.Index(o.orderedKeys, key); idx >= 0 {
		o.orderedKeys = slices.Delete(o.orderedKeys, idx, idx+1)
	}

	delete(o.data, key)

	return true
}

// Clear drops every entry.
func (o *Ordered[K, V]) Clear() {
	o.orderedKeys = nil
	o.data = make(map[K]V)
}

func (o *Ordered[K, V]) Size() int {
	return len(o.data)
}

// Seq yields (index, entry) pairs in insertion order. The key order is captured when
// iteration starts, so entries may be removed from inside the loop; removed entries
// that were not reached yet are skipped.
func (o *Ordered[K, V]) Seq() iter.Seq2[int, KeyValuePair[K, V]] {
	return func(yield func(int, KeyValuePair[K, V]) bool) {
		keys := slices.Clone(o.orderedKeys)
		idx := 0

		for _, key := range keys {
			value, ok := o.data[key]
			if !ok {
				continue
			}

			if !yield(idx, KeyValuePair[K, V]{Key: key, Value: value}) {
				return
			}

			idx++
		}
	}
}

// All yields (key, value) pairs in insertion order, with the same snapshot rule as Seq.
func (o *Ordered[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, entry := range o.Seq() {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (o *Ordered[K, V]) Keys() []K {
	return slices.Clone(o.orderedKeys)
}

// Values returns the values in insertion order.
func (o *Ordered[K, V]) Values() []V {
	values := make([]V, 0, len(o.orderedKeys))
	for _, key := range o.orderedKeys {
		values = append(values, o.data[key])
	}

	return values
}

// At returns the entry at position idx of the insertion order.
func (o *Ordered[K, V]) At(idx int) (KeyValuePair[K, V], bool) {
	if idx < 0 || idx >= len(o.orderedKeys) {
		return KeyValuePair[K, V]{}, false
	}

	key := o.orderedKeys[idx]

	return KeyValuePair[K, V]{Key: key, Value: o.data[key]}, true
}

// Clone returns a shallow, independent copy with the same insertion order.
func (o *Ordered[K, V]) Clone() *Ordered[K, V] {
	if o == nil {
		return nil
	}

	data := make(map[K]V, len(o.data))
	for key, value := range o.data {
		data[key] = value
	}

	return &Ordered[K, V]{
		orderedKeys: slices.Clone(o.orderedKeys),
		data:        data,
	}
}

// Union returns a new map with the entries of o followed by the entries of each other map.
// A key present in several maps keeps its first position and takes the last value.
func (o *Ordered[K, V]) Union(others ...*Ordered[K, V]) *Ordered[K, V] {
	result := o.Clone()

	for _, other := range others {
		for _, entry := range other.Seq() {
			result.Add(entry.Key, entry.Value)
		}
	}

	return result
}
