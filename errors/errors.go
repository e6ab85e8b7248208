// Package errors defines the error taxonomy shared by every container in this module.
//
// Mutating a frozen container yields an *ImmutabilityError, merging with a frozen
// collection yields a *MergeConflictError, and the remaining failures are plain
// sentinels wrapped with context. All of them work with the standard errors.Is
// and errors.As helpers.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrImmutable is matched by every *ImmutabilityError.
	ErrImmutable = errors.New("container is immutable")

	// ErrMergeConflict is matched by every *MergeConflictError.
	ErrMergeConflict = errors.New("merge conflict")

	// ErrUnsupportedSeed is returned when a constructor receives seed data that is
	// neither an ordered list nor a key/value structure.
	ErrUnsupportedSeed = errors.New("unsupported seed type")

	ErrAlreadyStarted  = errors.New("timed queue has already started")
	ErrNotStarted      = errors.New("timed queue has not started")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrWrongType       = errors.New("wrong type")
	ErrInvalidOptions  = errors.New("invalid timed queue options")

	// ErrPanicRecovery wraps a panic recovered from a listener or background task.
	ErrPanicRecovery = errors.New("recovered from panic")
)

// Kind names the container type that produced an error.
type Kind string

const (
	KindCollection Kind = "Collection"
	KindQueue      Kind = "Queue"
	KindTimedQueue Kind = "TimedQueue"
	KindPair       Kind = "Pair"
)

// ImmutabilityError is returned by a mutating operation invoked on a frozen container.
type ImmutabilityError struct {
	Kind Kind   // container that rejected the call
	Op   string // operation that was attempted
}

// Immutable builds an *ImmutabilityError for the given container kind and operation.
func Immutable(kind Kind, op string) error {
	return &ImmutabilityError{Kind: kind, Op: op}
}

func (e *ImmutabilityError) Error() string {
	return fmt.Sprintf("%s is immutable, values cannot be changed. (Called by %s#%s)", e.Kind, e.Kind, e.Op)
}

func (e *ImmutabilityError) Is(target error) bool {
	return target == ErrImmutable //nolint:errorlint,err113
}

// MergeConflictError is returned when one or more operands of a merge are frozen.
// Err holds the individual immutability failures, joined.
type MergeConflictError struct {
	Count int
	Err   error
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("%d collections cannot be merged due to some being immutable", e.Count)
}

func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict //nolint:errorlint,err113
}

func (e *MergeConflictError) Unwrap() error {
	return e.Err
}

// UnsupportedSeed wraps ErrUnsupportedSeed with the name of the type that was received.
func UnsupportedSeed(received string) error {
	return fmt.Errorf("%w: expected a slice or a map, received %s", ErrUnsupportedSeed, received)
}

// IndexOutOfRange wraps ErrIndexOutOfRange with the offending index and the current size.
func IndexOutOfRange(index, size int) error {
	return fmt.Errorf("%w: item at index %d is not in the cache (size %d)", ErrIndexOutOfRange, index, size)
}

// Collection is a thread-unsafe utility for accumulating multiple errors.
// Use this when several operands are checked and every failure should be reported together.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear removes all errors from the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of errors collected so far.
func (c *Collection) Len() int {
	return len(c.errors)
}

// GetError returns nil for an empty collection, the error itself when there is
// exactly one, and an errors.Join of all of them otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
