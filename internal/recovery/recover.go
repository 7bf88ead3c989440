// Package recovery converts panics in user-supplied callbacks (fetchers,
// resolvers) into errors so a misbehaving backend cannot crash the server.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Value wraps a function returning a value and an error. A panic inside fn
// is logged with its stack and returned as an error.
func Value[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			var zero T
			result = zero
			err = fmt.Errorf("%s panicked: %v", operation, r)
		}
	}()
	return fn()
}

// Run wraps a void function with panic recovery. Used for cleanup paths
// where no error can be returned.
func Run(logger *slog.Logger, operation string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic recovered",
				"operation", operation,
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
