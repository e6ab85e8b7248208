// Package freeze defines the immutability protocol implemented by every container in this module.
//
// A Freezable container starts out mutable. Freeze flips it to read-only for good;
// Unfreeze never thaws the receiver, it hands back a new, independent, mutable copy.
package freeze

import (
	errors2 "github.com/amp-labs/amp-collections/errors"
	"go.uber.org/atomic"
)

// Freezable is implemented by Collection, Pair, Queue and TimedQueue.
// T is the concrete container type returned by Unfreeze.
type Freezable[T any] interface {
	// Freeze makes the receiver reject every subsequent mutation.
	Freeze()

	// Unfreeze returns a new mutable container holding a shallow copy of the
	// receiver's contents. The receiver is left as it is.
	Unfreeze() T

	// Mutable reports whether the receiver still accepts mutations.
	Mutable() bool
}

// Guard is the mutable flag embedded in each container. The zero value is a
// mutable guard whose errors carry no kind; NewGuard names the kind.
// A Guard must not be copied after first use.
type Guard struct {
	kind   errors2.Kind
	frozen atomic.Bool
}

// NewGuard returns a mutable guard whose errors name the given container kind.
func NewGuard(kind errors2.Kind) Guard {
	return Guard{kind: kind}
}

// Freeze flips the guard to immutable. Calling it twice is harmless.
func (g *Guard) Freeze() {
	g.frozen.Store(true)
}

func (g *Guard) Mutable() bool {
	return !g.frozen.Load()
}

// Check returns an *errors.ImmutabilityError naming op when the guard is frozen.
func (g *Guard) Check(op string) error {
	if g.frozen.Load() {
		return errors2.Immutable(g.kind, op)
	}

	return nil
}

// Kind returns the container kind this guard reports in its errors.
func (g *Guard) Kind() errors2.Kind {
	return g.kind
}
