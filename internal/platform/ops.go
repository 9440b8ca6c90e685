package platform

import (
	"context"

	"github.com/aretw0/enumtext/pkg/adapters/fs"
)

// Open creates the catalog for dir and loads it.
// The catalog is returned even when loading fails, so that callers can still
// inspect it or watch it until the files are fixed.
func Open(dir string, opts ...Option) (*fs.Catalog, error) {
	return OpenContext(context.Background(), dir, opts...)
}

// OpenContext is like Open but bounds the initial load by ctx.
func OpenContext(ctx context.Context, dir string, opts ...Option) (*fs.Catalog, error) {
	c, err := New(dir, opts...)
	if err != nil {
		return nil, err
	}
	return c, c.Load(ctx)
}
