package collection

import (
	"github.com/amp-labs/amp-collections/optional"
)

// First returns the value of the earliest inserted entry.
func (c *Collection[K, V]) First() optional.Value[V] {
	entry, ok := c.store.At(0)
	if !ok {
		return optional.None[V]()
	}

	return optional.Some(entry.Value)
}

// Last returns the value of the most recently inserted entry.
func (c *Collection[K, V]) Last() optional.Value[V] {
	entry, ok := c.store.At(c.store.Size() - 1)
	if !ok {
		return optional.None[V]()
	}

	return optional.Some(entry.Value)
}

func (c *Collection[K, V]) FirstKey() optional.Value[K] {
	entry, ok := c.store.At(0)
	if !ok {
		return optional.None[K]()
	}

	return optional.Some(entry.Key)
}

func (c *Collection[K, V]) LastKey() optional.Value[K] {
	entry, ok := c.store.At(c.store.Size() - 1)
	if !ok {
		return optional.None[K]()
	}

	return optional.Some(entry.Key)
}

// FirstN returns up to n values from the front. A negative n returns LastN(-n).
func (c *Collection[K, V]) FirstN(n int) []V {
	if n < 0 {
		return c.LastN(flipCount(n, c.Size()))
	}

	values := c.store.Values()

	return values[:min(n, len(values))]
}

// LastN returns up to n values from the back, in insertion order. A negative n returns FirstN(-n).
func (c *Collection[K, V]) LastN(n int) []V {
	if n < 0 {
		return c.FirstN(flipCount(n, c.Size()))
	}

	values := c.store.Values()

	return values[len(values)-min(n, len(values)):]
}

// FirstKeyN is FirstN for keys.
func (c *Collection[K, V]) FirstKeyN(n int) []K {
	if n < 0 {
		return c.LastKeyN(flipCount(n, c.Size()))
	}

	keys := c.store.Keys()

	return keys[:min(n, len(keys))]
}

// LastKeyN is LastN for keys.
func (c *Collection[K, V]) LastKeyN(n int) []K {
	if n < 0 {
		return c.FirstKeyN(flipCount(n, c.Size()))
	}

	keys := c.store.Keys()

	return keys[len(keys)-min(n, len(keys)):]
}

// flipCount negates a negative count after clipping it to size, so math.MinInt
// does not overflow back to itself.
func flipCount(n, size int) int {
	return -max(n, -size)
}

// Shift returns the first value and, when remove is true, deletes its entry.
// Only removal requires the collection to be mutable.
func (c *Collection[K, V]) Shift(remove bool) (optional.Value[V], error) {
	return c.takeAt(0, remove, "shift")
}

// Unshift returns the last value and, when remove is true, deletes its entry.
func (c *Collection[K, V]) Unshift(remove bool) (optional.Value[V], error) {
	return c.takeAt(c.store.Size()-1, remove, "unshift")
}

func (c *Collection[K, V]) takeAt(idx int, remove bool, op string) (optional.Value[V], error) {
	if remove {
		if err := c.guard.Check(op); err != nil {
			return optional.None[V](), err
		}
	}

	entry, ok := c.store.At(idx)
	if !ok {
		return optional.None[V](), nil
	}

	if remove {
		c.store.Remove(entry.Key)
	}

	return optional.Some(entry.Value), nil
}
