// Package fs implements an enum catalog backed by YAML and JSON files.
//
// Every file matched by the catalog pattern may declare record types and
// enums. Load compiles all of them and publishes an immutable snapshot;
// readers never lock and keep using the snapshot they started with.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/enumtext/pkg/core"
	"github.com/aretw0/enumtext/pkg/enum"
)

// DefaultPattern matches every YAML and JSON file under the catalog root.
const DefaultPattern = "**/*.{yaml,yml,json}"

var ErrInvalidDeclaration = errors.New("invalid declaration")

// Config holds the configuration for a file catalog.
type Config struct {
	Path         string
	Pattern      string        // doublestar pattern relative to Path
	Logger       *slog.Logger
	Debounce     time.Duration // quiet period before a watched change reloads
	EventBuffer  int
	ErrorHandler func(error) // receives fsnotify failures during Watch
}

// Catalog is a set of enums compiled from catalog files.
type Catalog struct {
	Path   string
	config Config
	cache  *cache

	buildMu sync.Mutex
	snap    atomic.Pointer[snapshot]

	mu            sync.RWMutex
	watcherActive bool
	reloads       int
	lastError     error
}

type snapshot struct {
	enums    map[string]*catalogEnum
	types    map[string]*recordType
	names    []string
	files    []string
	loadedAt time.Time
}

type catalogEnum struct {
	desc   *enum.Descriptor
	source string
	fields map[string][]*fieldType
}

// NewCatalog creates an empty catalog. Nothing is read until Load.
func NewCatalog(config Config) *Catalog {
	if config.Pattern == "" {
		config.Pattern = DefaultPattern
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 16
	}
	c := &Catalog{
		Path:   config.Path,
		config: config,
		cache:  newCache(),
	}
	c.snap.Store(&snapshot{
		enums: map[string]*catalogEnum{},
		types: map[string]*recordType{},
	})
	return c
}

// Load reads and compiles every catalog file. On failure the previously
// published snapshot stays in place and every problem found is reported.
func (c *Catalog) Load(ctx context.Context) error {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	start := time.Now()
	snap, err := c.compile(ctx)

	c.mu.Lock()
	c.lastError = err
	if err == nil {
		c.reloads++
	}
	c.mu.Unlock()

	if err != nil {
		c.config.Logger.Warn("catalog load failed", "path", c.Path, "error", err)
		return err
	}
	c.snap.Store(snap)
	c.config.Logger.Debug("catalog loaded",
		"path", c.Path,
		"files", len(snap.files),
		"enums", len(snap.names),
		"duration", time.Since(start),
	)
	return nil
}

type sourcedFile struct {
	path string
	doc  catalogFile
}

func (c *Catalog) compile(ctx context.Context) (*snapshot, error) {
	if _, err := os.Stat(c.Path); err != nil {
		return nil, fmt.Errorf("catalog root: %w", err)
	}
	fsys := os.DirFS(c.Path)
	paths, err := doublestar.Glob(fsys, c.config.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", c.config.Pattern, err)
	}
	sort.Strings(paths)

	var docs []sourcedFile
	var errs []error
	keep := make(map[string]bool, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		keep[p] = true
		fileDocs, err := c.readFile(fsys, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		for _, d := range fileDocs {
			docs = append(docs, sourcedFile{path: p, doc: d})
		}
	}
	c.cache.Prune(keep)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	snap := &snapshot{
		enums:    make(map[string]*catalogEnum),
		types:    make(map[string]*recordType),
		files:    paths,
		loadedAt: time.Now(),
	}
	errs = append(errs, snap.declareTypes(docs)...)
	errs = append(errs, snap.compileEnums(docs)...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	snap.names = make([]string, 0, len(snap.enums))
	for name := range snap.enums {
		snap.names = append(snap.names, name)
	}
	sort.Strings(snap.names)
	return snap, nil
}

func (c *Catalog) readFile(fsys iofs.FS, p string) ([]catalogFile, error) {
	info, err := iofs.Stat(fsys, p)
	if err != nil {
		return nil, err
	}
	if entry, ok := c.cache.Get(p, info.ModTime(), info.Size()); ok {
		return entry.Docs, nil
	}
	data, err := iofs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	docs, err := decodeFile(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	c.cache.Set(p, &cacheEntry{LastModified: info.ModTime(), Size: info.Size(), Docs: docs})
	return docs, nil
}

func (s *snapshot) lookupType(name string) (*fieldType, error) {
	if ft, ok := scalarTypes[name]; ok {
		return ft, nil
	}
	if rt, ok := s.types[name]; ok {
		return rt.fieldType(), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
}

// declareTypes registers every record type, resolves their fields and
// compiles their display templates.
func (s *snapshot) declareTypes(docs []sourcedFile) []error {
	var errs []error
	var decls []typeDecl
	for _, d := range docs {
		for _, td := range d.doc.Types {
			switch {
			case td.Name == "":
				errs = append(errs, fmt.Errorf("%s: %w: type without a name", d.path, ErrInvalidDeclaration))
				continue
			case scalarTypes[td.Name] != nil:
				errs = append(errs, fmt.Errorf("%s: %w: type %s shadows a builtin type", d.path, ErrInvalidDeclaration, td.Name))
				continue
			}
			if prev, dup := s.types[td.Name]; dup {
				errs = append(errs, fmt.Errorf("%s: %w: type %s already declared in %s", d.path, ErrDuplicate, td.Name, prev.source))
				continue
			}
			s.types[td.Name] = &recordType{name: td.Name, source: d.path}
			decls = append(decls, td)
		}
	}

	var resolved []typeDecl
	for _, td := range decls {
		rt := s.types[td.Name]
		shape, types, err := shapeOf(td.Fields, s.lookupType)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: type %s: %w", rt.source, td.Name, err))
			delete(s.types, td.Name)
			continue
		}
		rt.shape, rt.fields = shape, types
		resolved = append(resolved, td)
	}
	if len(errs) > 0 {
		return errs
	}

	for _, rt := range s.types {
		caps := core.CapDefault
		if rt.structured(make(map[*recordType]bool)) {
			caps |= core.CapStructured
		}
		rt.fieldType().caps = caps
	}
	for _, rt := range s.types {
		rt.syncCaps()
	}
	for _, td := range resolved {
		if td.Display == "" {
			continue
		}
		rt := s.types[td.Name]
		r, err := compileDisplay(rt, td.Display)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rt.source, err))
			continue
		}
		rt.display = r
	}
	return errs
}

func (s *snapshot) compileEnums(docs []sourcedFile) []error {
	var errs []error
	for _, d := range docs {
		for _, ed := range d.doc.Enums {
			if ed.Name == "" {
				errs = append(errs, fmt.Errorf("%s: %w: enum without a name", d.path, ErrInvalidDeclaration))
				continue
			}
			if prev, dup := s.enums[ed.Name]; dup {
				errs = append(errs, fmt.Errorf("%s: %w: enum %s already declared in %s", d.path, ErrDuplicate, ed.Name, prev.source))
				continue
			}

			var verrs []error
			variants := make([]enum.Variant, 0, len(ed.Variants))
			fields := make(map[string][]*fieldType, len(ed.Variants))
			for _, vd := range ed.Variants {
				shape, types, err := shapeOf(vd.Fields, s.lookupType)
				if err != nil {
					verrs = append(verrs, attribute(err, ed.Name, vd.Name))
					continue
				}
				variants = append(variants, enum.Variant{Tag: vd.Name, Shape: shape, Template: vd.Template})
				fields[vd.Name] = types
			}
			desc, err := enum.Compile(ed.Name, variants...)
			if err != nil {
				verrs = append(verrs, err)
			}
			if len(verrs) > 0 {
				errs = append(errs, fmt.Errorf("%s: %w", d.path, errors.Join(verrs...)))
				continue
			}
			s.enums[ed.Name] = &catalogEnum{desc: desc, source: d.path, fields: fields}
		}
	}
	return errs
}

func attribute(err error, enumName, variant string) error {
	var ce *core.CompileError
	if errors.As(err, &ce) {
		return ce.WithVariant(enumName, variant)
	}
	return fmt.Errorf("%s::%s: %w", enumName, variant, err)
}

// Lookup returns the compiled descriptor of an enum.
func (c *Catalog) Lookup(name string) (*enum.Descriptor, bool) {
	e, ok := c.snap.Load().enums[name]
	if !ok {
		return nil, false
	}
	return e.desc, true
}

// Names returns the enum names in lexical order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.snap.Load().names...)
}

// Source returns the catalog file that declares an enum.
func (c *Catalog) Source(name string) (string, bool) {
	e, ok := c.snap.Load().enums[name]
	if !ok {
		return "", false
	}
	return e.source, true
}

// Files returns the catalog files of the current snapshot.
func (c *Catalog) Files() []string {
	return append([]string(nil), c.snap.Load().files...)
}

// Render decodes YAML or JSON instance data and renders it with the
// template of enumName::variant. Empty data is a unit instance.
func (c *Catalog) Render(enumName, variant string, data []byte) (string, error) {
	var n yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &n); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}
	return c.RenderNode(enumName, variant, &n)
}

// RenderNode renders an already parsed instance.
func (c *Catalog) RenderNode(enumName, variant string, n *yaml.Node) (string, error) {
	e, ok := c.snap.Load().enums[enumName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownEnum, enumName)
	}
	types, ok := e.fields[variant]
	if !ok {
		return "", fmt.Errorf("%w: %s::%s", ErrUnknownVariant, enumName, variant)
	}
	r, _ := e.desc.Renderer(variant)
	values, err := decodeValues(r.Shape(), types, n)
	if err != nil {
		return "", fmt.Errorf("%s::%s: %w", enumName, variant, err)
	}
	return e.desc.Render(core.Instance{Tag: variant, Values: values}), nil
}

// covers reports whether rel names a catalog file of the current snapshot
// or a directory holding one.
func (c *Catalog) covers(rel string) bool {
	prefix := strings.TrimSuffix(rel, "/") + "/"
	for _, f := range c.snap.Load().files {
		if f == rel || strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

func (c *Catalog) relPath(path string) (string, error) {
	rel, err := filepath.Rel(c.Path, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
