package platform

import (
	"path/filepath"

	"github.com/aretw0/enumtext/pkg/adapters/fs"
)

// New creates a catalog for dir without reading it.
//
//	c, err := platform.New("./enums", platform.WithPattern("**/*.yaml"))
func New(dir string, opts ...Option) (*fs.Catalog, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	path, err := resolvePath(dir, o)
	if err != nil {
		return nil, err
	}

	return fs.NewCatalog(fs.Config{
		Path:         path,
		Pattern:      o.pattern,
		Logger:       o.logger,
		Debounce:     o.debounce,
		EventBuffer:  o.eventBuffer,
		ErrorHandler: o.errorHandler,
	}), nil
}

func resolvePath(dir string, o *options) (string, error) {
	if dir == "" {
		dir = "."
	}
	if o.findRoot {
		if root, err := FindRoot(dir); err == nil {
			if o.logger != nil {
				o.logger.Debug("catalog root found", "start", dir, "root", root)
			}
			return root, nil
		}
	}
	return filepath.Abs(dir)
}
