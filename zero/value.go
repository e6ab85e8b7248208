// Package zero provides the zero value of a generic type parameter.
package zero

// Value returns the zero value for type T.
//
// Example:
//
//	var missing = zero.Value[string]() // ""
func Value[T any]() T {
	var zeroVal T

	return zeroVal
}
