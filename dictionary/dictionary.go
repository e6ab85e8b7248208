// Package dictionary provides Dictionary, a plain string-keyed map that enumerates its keys
// in natural order ("2" before "10"). It does not take part in the freeze protocol.
package dictionary

import (
	"fmt"
	"strconv"

	"facette.io/natsort"
	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/amp-labs/amp-collections/tuple"
)

// Dictionary maps string keys to values. Numeric keys are stored in their decimal form.
// Dictionary is not thread-safe.
type Dictionary[V any] struct {
	cache map[string]V
}

// New returns an empty dictionary.
func New[V any]() *Dictionary[V] {
	return &Dictionary[V]{cache: make(map[string]V)}
}

// From builds a dictionary from a []V (keyed "0", "1", ...), a map[string]V, a map[int]V
// or another *Dictionary[V]. nil gives an empty dictionary; anything else fails with
// errors.ErrUnsupportedSeed.
func From[V any](seed any) (*Dictionary[V], error) {
	switch src := seed.(type) {
	case nil:
		return New[V](), nil
	case []V:
		return FromSlice(src), nil
	case map[string]V:
		return FromMap(src), nil
	case map[int]V:
		dict := New[V]()
		for key, value := range src {
			dict.SetIndex(key, value)
		}

		return dict, nil
	case *Dictionary[V]:
		dict := New[V]()
		if src != nil {
			for key, value := range src.cache {
				dict.cache[key] = value
			}
		}

		return dict, nil
	default:
		return nil, errors2.UnsupportedSeed(fmt.Sprintf("%T", seed))
	}
}

// FromSlice keys each value by its position.
func FromSlice[V any](values []V) *Dictionary[V] {
	dict := New[V]()
	for _, value := range values {
		dict.SetIndex(dict.Size(), value)
	}

	return dict
}

// FromMap copies m.
func FromMap[V any](m map[string]V) *Dictionary[V] {
	dict := New[V]()
	for key, value := range m {
		dict.cache[key] = value
	}

	return dict
}

// Set stores value under key unless the key is already present.
// It reports whether the value was stored; existing keys are never overwritten.
func (d *Dictionary[V]) Set(key string, value V) bool {
	if _, ok := d.cache[key]; ok {
		return false
	}

	d.cache[key] = value

	return true
}

// SetIndex is Set with a numeric key.
func (d *Dictionary[V]) SetIndex(key int, value V) bool {
	return d.Set(strconv.Itoa(key), value)
}

func (d *Dictionary[V]) Get(key string) (V, bool) {
	value, ok := d.cache[key]

	return value, ok
}

// Delete removes key and reports whether it was present.
func (d *Dictionary[V]) Delete(key string) bool {
	if _, ok := d.cache[key]; !ok {
		return false
	}

	delete(d.cache, key)

	return true
}

func (d *Dictionary[V]) Contains(key string) bool {
	_, ok := d.cache[key]

	return ok
}

func (d *Dictionary[V]) Size() int {
	return len(d.cache)
}

func (d *Dictionary[V]) Empty() bool {
	return len(d.cache) == 0
}

// Keys returns the keys in natural order.
func (d *Dictionary[V]) Keys() []string {
	keys := make([]string, 0, len(d.cache))
	for key := range d.cache {
		keys = append(keys, key)
	}

	natsort.Sort(keys)

	return keys
}

// Values returns the values in the order of Keys.
func (d *Dictionary[V]) Values() []V {
	keys := d.Keys()
	values := make([]V, 0, len(keys))

	for _, key := range keys {
		values = append(values, d.cache[key])
	}

	return values
}

// Entries returns one pair per key, in the order of Keys.
func (d *Dictionary[V]) Entries() []*tuple.Pair[string, V] {
	keys := d.Keys()
	entries := make([]*tuple.Pair[string, V], 0, len(keys))

	for _, key := range keys {
		entries = append(entries, tuple.NewPair(key, d.cache[key]))
	}

	return entries
}

// FilterKeys returns the keys, in order, for which predicate returns true.
func (d *Dictionary[V]) FilterKeys(predicate func(key string) bool) []string {
	results := make([]string, 0)

	for _, key := range d.Keys() {
		if predicate(key) {
			results = append(results, key)
		}
	}

	return results
}

// FilterValues returns the values, in key order, for which predicate returns true.
func (d *Dictionary[V]) FilterValues(predicate func(value V) bool) []V {
	results := make([]V, 0)

	for _, value := range d.Values() {
		if predicate(value) {
			results = append(results, value)
		}
	}

	return results
}

// MapKeys applies fn to every key of d, in order.
func MapKeys[V any, S any](d *Dictionary[V], fn func(key string) S) []S {
	keys := d.Keys()
	results := make([]S, 0, len(keys))

	for _, key := range keys {
		results = append(results, fn(key))
	}

	return results
}

// MapValues applies fn to every value of d, in key order.
func MapValues[V any, S any](d *Dictionary[V], fn func(value V) S) []S {
	values := d.Values()
	results := make([]S, 0, len(values))

	for _, value := range values {
		results = append(results, fn(value))
	}

	return results
}
