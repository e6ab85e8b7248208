package utils

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/atomic"
)

// DeprecationHandler receives a notice each time a deprecated operation is called.
type DeprecationHandler func(ctx context.Context, method string, replacements []string)

var defaultDeprecationHandler = atomic.NewPointer[DeprecationHandler](nil) //nolint:gochecknoglobals

// SetDefaultDeprecationHandler installs the handler used when a caller has none of its own.
// Passing nil restores the no-op default. It returns the previous handler.
func SetDefaultDeprecationHandler(handler DeprecationHandler) DeprecationHandler {
	var prev *DeprecationHandler
	if handler == nil {
		prev = defaultDeprecationHandler.Swap(nil)
	} else {
		prev = defaultDeprecationHandler.Swap(&handler)
	}

	if prev == nil {
		return nil
	}

	return *prev
}

// Deprecate reports a call to a deprecated method. handler wins over the default;
// with neither installed the call is a no-op.
func Deprecate(ctx context.Context, handler DeprecationHandler, method string, replacements ...string) {
	if handler == nil {
		if def := defaultDeprecationHandler.Load(); def != nil {
			handler = *def
		}
	}

	if handler == nil {
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	handler(ctx, method, replacements)
}

// DeprecationMessage renders the standard deprecation text.
func DeprecationMessage(method string, replacements []string) string {
	var use string

	switch len(replacements) {
	case 0:
		return fmt.Sprintf("Method %q is deprecated and will be removed in a future release.", method)
	case 1:
		use = "function " + replacements[0]
	default:
		use = "functions " + strings.Join(replacements, ", ")
	}

	return fmt.Sprintf("Method %q is deprecated and will be removed in a future release, please use %s.", method, use)
}

// SlogDeprecationHandler logs every notice as a warning on logger.
func SlogDeprecationHandler(logger *slog.Logger) DeprecationHandler {
	return func(ctx context.Context, method string, replacements []string) {
		logger.WarnContext(ctx, DeprecationMessage(method, replacements),
			"method", method,
			"replacements", replacements)
	}
}
