// Package tuple provides Pair, a two-slot container that takes part in the freeze protocol.
package tuple

import (
	"fmt"

	errors2 "github.com/amp-labs/amp-collections/errors"
	"github.com/amp-labs/amp-collections/freeze"
	"github.com/amp-labs/amp-collections/utils"
)

// Pair holds two values. Once frozen, neither slot can be replaced.
// The zero value is an empty mutable pair. Pair is not thread-safe.
type Pair[A any, B any] struct {
	first  A
	second B
	guard  freeze.Guard
}

var _ freeze.Freezable[*Pair[string, int]] = (*Pair[string, int])(nil)

// NewPair creates a mutable pair.
//
// Example:
//
//	p := tuple.NewPair("a", "b")
//	p.First()  // "a"
//	p.Second() // "b"
func NewPair[A, B any](first A, second B) *Pair[A, B] {
	return &Pair[A, B]{
		first:  first,
		second: second,
	}
}

func (p *Pair[A, B]) First() A { //nolint:ireturn
	return p.first
}

func (p *Pair[A, B]) Second() B { //nolint:ireturn
	return p.second
}

// Right is the legacy name of First.
func (p *Pair[A, B]) Right() A { //nolint:ireturn
	return p.first
}

// Left is the legacy name of Second.
func (p *Pair[A, B]) Left() B { //nolint:ireturn
	return p.second
}

// Values returns both slots at once.
func (p *Pair[A, B]) Values() (A, B) { //nolint:ireturn
	return p.first, p.second
}

// SetFirst replaces the first slot. Fails with an *errors.ImmutabilityError once frozen.
func (p *Pair[A, B]) SetFirst(value A) error {
	if err := p.check("setFirst"); err != nil {
		return err
	}

	p.first = value

	return nil
}

// SetSecond replaces the second slot. Fails with an *errors.ImmutabilityError once frozen.
func (p *Pair[A, B]) SetSecond(value B) error {
	if err := p.check("setSecond"); err != nil {
		return err
	}

	p.second = value

	return nil
}

func (p *Pair[A, B]) check(op string) error {
	if p.guard.Mutable() {
		return nil
	}

	return errors2.Immutable(errors2.KindPair, op)
}

func (p *Pair[A, B]) Freeze() {
	p.guard.Freeze()
}

// Unfreeze returns a new mutable pair with the same slot values.
func (p *Pair[A, B]) Unfreeze() *Pair[A, B] {
	return NewPair(p.first, p.second)
}

func (p *Pair[A, B]) Mutable() bool {
	return p.guard.Mutable()
}

// String describes the slot kinds, e.g. "Pair<string, int>".
func (p *Pair[A, B]) String() string {
	return fmt.Sprintf("Pair<%s, %s>", utils.KindOf(p.first), utils.KindOf(p.second))
}
