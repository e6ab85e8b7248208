package maps_test

import (
	"testing"

	"github.com/amp-labs/amp-collections/maps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect[K comparable, V any](o *maps.Ordered[K, V]) ([]K, []V) {
	var (
		keys   []K
		values []V
	)

	for key, value := range o.All() {
		keys = append(keys, key)
		values = append(values, value)
	}

	return keys, values
}

func TestOrderedAdd(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		o := maps.NewOrdered[string, int]()
		assert.True(t, o.Add("c", 3))
		assert.True(t, o.Add("a", 1))
		assert.True(t, o.Add("b", 2))

		keys, values := collect(o)
		assert.Equal(t, []string{"c", "a", "b"}, keys)
		assert.Equal(t, []int{3, 1, 2}, values)
	})

	t.Run("overwrite keeps the original position", func(t *testing.T) {
		t.Parallel()

		o := maps.NewOrdered[string, int]()
		o.Add("a", 1)
		o.Add("b", 2)
		assert.False(t, o.Add("a", 10))

		keys, values := collect(o)
		assert.Equal(t, []string{"a", "b"}, keys)
		assert.Equal(t, []int{10, 2}, values)
		assert.Equal(t, 2, o.Size())
	})
}

func TestOrderedRemove(t *testing.T) {
	t.Parallel()

	o := maps.NewOrdered[int, string]()
	o.Add(1, "one")
	o.Add(2, "two")
	o.Add(3, "three")

	assert.True(t, o.Remove(2))
	assert.False(t, o.Remove(2))
	assert.False(t, o.Contains(2))
	assert.Equal(t, []int{1, 3}, o.Keys())
	assert.Equal(t, []string{"one", "three"}, o.Values())

	o.Clear()
	assert.Equal(t, 0, o.Size())
	assert.Empty(t, o.Keys())
}

func TestOrderedSeq(t *testing.T) {
	t.Parallel()

	t.Run("indexes are dense and ordered", func(t *testing.T) {
		t.Parallel()

		o := maps.NewOrdered[string, int]()
		o.Add("x", 1)
		o.Add("y", 2)

		var indexes []int
		for i, entry := range o.Seq() {
			indexes = append(indexes, i)

			v, ok := o.Get(entry.Key)
			require.True(t, ok)
			assert.Equal(t, entry.Value, v)
		}

		assert.Equal(t, []int{0, 1}, indexes)
	})

	t.Run("removal during iteration is safe", func(t *testing.T) {
		t.Parallel()

		o := maps.NewOrdered[int, int]()
		for i := range 5 {
			o.Add(i, i*i)
		}

		var seen []int
		for key := range o.All() {
			seen = append(seen, key)
			o.Remove(key)
		}

		assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
		assert.Equal(t, 0, o.Size())
	})

	t.Run("stops early", func(t *testing.T) {
		t.Parallel()

		o := maps.NewOrdered[int, int]()
		for i := range 5 {
			o.Add(i, i)
		}

		count := 0
		for range o.All() {
			count++
			if count == 2 {
				break
			}
		}

		assert.Equal(t, 2, count)
	})
}

func TestOrderedAt(t *testing.T) {
	t.Parallel()

	o := maps.NewOrdered[string, int]()
	o.Add("a", 1)
	o.Add("b", 2)

	entry, ok := o.At(1)
	require.True(t, ok)
	assert.Equal(t, maps.KeyValuePair[string, int]{Key: "b", Value: 2}, entry)

	_, ok = o.At(2)
	assert.False(t, ok)

	_, ok = o.At(-1)
	assert.False(t, ok)
}

func TestOrderedCloneAndUnion(t *testing.T) {
	t.Parallel()

	a := maps.NewOrdered[string, int]()
	a.Add("a", 1)
	a.Add("b", 2)

	clone := a.Clone()
	clone.Add("c", 3)
	assert.Equal(t, 2, a.Size())
	assert.Equal(t, 3, clone.Size())

	b := maps.NewOrdered[string, int]()
	b.Add("b", 20)
	b.Add("d", 4)

	union := a.Union(b)
	keys, values := collect(union)
	assert.Equal(t, []string{"a", "b", "d"}, keys)
	assert.Equal(t, []int{1, 20, 4}, values)
	assert.Equal(t, 2, a.Size())

	var nilMap *maps.Ordered[string, int]
	assert.Nil(t, nilMap.Clone())
}
