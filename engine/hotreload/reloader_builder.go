package hotreload

import (
	"log/slog"
	"time"
)

// ReloaderBuilderOption is a functional option for configuring a reloader.
type ReloaderBuilderOption func(r *reloader)

// WithDebounce sets how long a file must stay quiet before it is reparsed.
//
// Parameters:
//   - d: the debounce interval
//
// Returns:
//   - ReloaderBuilderOption: option function to apply
func WithDebounce(d time.Duration) ReloaderBuilderOption {
	return func(r *reloader) {
		if d >= 0 {
			r.debounce = d
		}
	}
}

// WithWorkers sets the number of parse workers.
//
// Parameters:
//   - n: the worker count, ignored if less than 1
//
// Returns:
//   - ReloaderBuilderOption: option function to apply
func WithWorkers(n int) ReloaderBuilderOption {
	return func(r *reloader) {
		if n >= 1 {
			r.workers = n
		}
	}
}

// WithParseFunc replaces the function used to load shaders.
//
// Parameters:
//   - fn: the parse function
//
// Returns:
//   - ReloaderBuilderOption: option function to apply
func WithParseFunc(fn ParseFunc) ReloaderBuilderOption {
	return func(r *reloader) {
		if fn != nil {
			r.parse = fn
		}
	}
}

// WithLogger sets the logger. The component attribute is added by NewReloader.
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - ReloaderBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) ReloaderBuilderOption {
	return func(r *reloader) {
		if logger != nil {
			r.logger = logger
		}
	}
}
