package platform

import (
	"log/slog"
	"time"
)

// options holds the internal configuration for opening a catalog.
type options struct {
	logger       *slog.Logger
	pattern      string
	debounce     time.Duration
	eventBuffer  int
	errorHandler func(error)
	findRoot     bool
}

// Option defines a functional option for configuring a catalog.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger used for load and watch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPattern selects catalog files with a doublestar pattern relative to the
// catalog root (e.g. "enums/**/*.yaml").
// Defaults to "**/*.{yaml,yml,json}".
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.pattern = pattern
	}
}

// WithDebounce sets the quiet period after a file change before Watch reloads.
// Zero means default (50ms).
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithEventBuffer sets the size of the Watch event channel.
// Zero means default (16).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised by the
// filesystem watcher (e.g. permission denied on a new directory), which are
// otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithFindRoot makes Open look upwards from the given directory for a
// catalog root marker (.enumtext or enumtext.yaml) and use that directory
// instead. The given directory is used when no marker is found.
func WithFindRoot(enabled bool) Option {
	return func(o *options) {
		o.findRoot = enabled
	}
}
