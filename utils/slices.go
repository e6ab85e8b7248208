package utils

import (
	"slices"

	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/amp-labs/amp-collections/zero"
)

// Remove deletes the first occurrence of item from s and reports whether anything was removed.
// The returned slice shares its backing array with s.
func Remove[T comparable](s []T, item T) ([]T, bool) {
	idx := slices.Index(s, item)
	if idx < 0 {
		return s, false
	}

	return slices.Delete(s, idx, idx+1), true
}

// RemoveAt deletes the element at index and returns it.
// Returns errors.ErrIndexOutOfRange when index has no value.
func RemoveAt[T any](s []T, index int) ([]T, T, error) {
	if index < 0 || index >= len(s) {
		return s, zero.Value[T](), errors2.IndexOutOfRange(index, len(s))
	}

	removed := s[index]

	return slices.Delete(s, index, index+1), removed, nil
}
