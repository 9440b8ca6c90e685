package enumtext

import (
	"log/slog"
	"time"

	"github.com/aretw0/enumtext/internal/platform"
	"github.com/aretw0/enumtext/pkg/adapters/fs"
	"github.com/aretw0/enumtext/pkg/bind"
	"github.com/aretw0/enumtext/pkg/core"
	"github.com/aretw0/enumtext/pkg/enum"
)

// --- Types ---

type (
	Shape        = core.Shape
	Field        = core.Field
	Capability   = core.Capability
	Instance     = core.Instance
	Event        = core.Event
	CompileError = core.CompileError
	Renderer     = bind.Renderer
	Descriptor   = enum.Descriptor
	Variant      = enum.Variant
	Catalog      = fs.Catalog
)

const (
	CapDefault    = core.CapDefault
	CapStructured = core.CapStructured
	CapIntegral   = core.CapIntegral
)

// Errors re-exported for errors.Is checks.
var (
	ErrSyntax           = core.ErrSyntax
	ErrUnitPlaceholder  = core.ErrUnitPlaceholder
	ErrIndexOutOfRange  = core.ErrIndexOutOfRange
	ErrUnknownField     = core.ErrUnknownField
	ErrShapeMismatch    = core.ErrShapeMismatch
	ErrCapability       = core.ErrCapability
	ErrInvalidShape     = core.ErrInvalidShape
	ErrInvalidVariant   = core.ErrInvalidVariant
	ErrDuplicateVariant = core.ErrDuplicateVariant
)

// Unit returns the shape of a variant without fields.
func Unit() Shape { return core.Unit() }

// Positional returns the shape of a variant with ordered fields.
func Positional(fields ...Field) Shape { return core.Positional(fields...) }

// Named returns the shape of a variant with named fields.
func Named(fields ...Field) Shape { return core.Named(fields...) }

// --- Templates ---

// Compile binds a display template to a variant shape. All template errors
// are reported here; rendering never fails.
func Compile(shape Shape, template string) (*Renderer, error) {
	return bind.Compile(shape, template)
}

// MustCompile is like Compile but panics on error.
func MustCompile(shape Shape, template string) *Renderer {
	return bind.MustCompile(shape, template)
}

// Render executes a compiled renderer over field values in shape order.
func Render(r *Renderer, values ...any) string {
	return r.Render(values...)
}

// CompileEnum compiles the templates of every variant of an enum.
func CompileEnum(name string, variants ...Variant) (*Descriptor, error) {
	return enum.Compile(name, variants...)
}

// --- Configuration ---

// Option defines a functional option for opening a catalog.
type Option = platform.Option

// WithLogger sets the logger for load and watch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithPattern selects catalog files with a doublestar pattern.
func WithPattern(pattern string) Option {
	return platform.WithPattern(pattern)
}

// WithDebounce sets the quiet period before a watched change reloads.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithEventBuffer sets the size of the Watch event channel.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for filesystem watcher errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithFindRoot looks upwards for a catalog root marker.
func WithFindRoot(enabled bool) Option {
	return platform.WithFindRoot(enabled)
}

// --- Catalog ---

// Open creates and loads the file catalog rooted at dir.
func Open(dir string, opts ...Option) (*Catalog, error) {
	return platform.Open(dir, opts...)
}
