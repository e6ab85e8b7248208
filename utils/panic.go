package utils

import (
	"fmt"
	"runtime/debug"

	errors2 "github.com/amp-labs/amp-collections/errors"
)

// PanicError converts a recovered panic value into an error wrapping errors.ErrPanicRecovery.
// Error values are wrapped so errors.Is still finds them. A nil value gives nil.
func PanicError(recovered any, stack []byte) error {
	if recovered == nil {
		return nil
	}

	var err error
	if cause, ok := recovered.(error); ok {
		err = fmt.Errorf("%w: %w", errors2.ErrPanicRecovery, cause)
	} else {
		err = fmt.Errorf("%w: %v", errors2.ErrPanicRecovery, recovered)
	}

	if stack != nil {
		err = fmt.Errorf("%w\nstack trace:\n%s", err, stack)
	}

	return err
}

// CallSafely runs fn and turns a panic into an error carrying the stack trace.
func CallSafely(fn func()) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = PanicError(recovered, debug.Stack())
		}
	}()

	fn()

	return nil
}
