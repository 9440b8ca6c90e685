// Package bind resolves parsed template placeholders against a variant shape
// and compiles the result into an immutable Renderer.
package bind

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/enumtext/pkg/core"
)

// Binding is a placeholder resolved to a field of its variant.
type Binding struct {
	// Field is the index into Shape.Fields.
	Field   int
	Format  core.FormatKind
	Segment core.Segment
}

// Resolve binds every placeholder in segs to a field of shape.
// Literal segments are ignored. The first failure is returned as a
// *core.CompileError.
func Resolve(segs []core.Segment, shape core.Shape) ([]Binding, error) {
	var out []Binding
	for _, seg := range segs {
		if seg.Kind != core.SegmentPlaceholder {
			continue
		}
		field, err := resolveRef(seg, shape)
		if err != nil {
			return nil, err
		}
		out = append(out, Binding{Field: field, Format: seg.Format, Segment: seg})
	}
	return out, nil
}

func resolveRef(seg core.Segment, shape core.Shape) (int, error) {
	fail := func(kind error, format string, args ...any) (int, error) {
		return 0, &core.CompileError{
			Placeholder: seg.String(),
			Pos:         seg.Pos,
			Kind:        kind,
			Reason:      fmt.Sprintf(format, args...),
		}
	}

	if shape.Kind == core.ShapeUnit {
		return fail(core.ErrUnitPlaceholder, "variant has no fields")
	}

	switch seg.Ref.Kind {
	case core.RefIndex:
		if shape.Kind == core.ShapeNamed {
			return fail(core.ErrShapeMismatch, "index reference on a variant with named fields")
		}
		if seg.Ref.Index >= shape.Arity() {
			return fail(core.ErrIndexOutOfRange, "index %s but variant has %d fields", indexText(seg), shape.Arity())
		}
		return seg.Ref.Index, nil
	default:
		if shape.Kind != core.ShapeNamed {
			return fail(core.ErrUnknownField, "no field named %q on a variant with positional fields", seg.Ref.Name)
		}
		i, ok := shape.Lookup(seg.Ref.Name)
		if !ok {
			return fail(core.ErrUnknownField, "no field named %q", seg.Ref.Name)
		}
		return i, nil
	}
}

// indexText is the index as written, which may not fit an int.
func indexText(seg core.Segment) string {
	if seg.Raw != "" {
		ref, _, _ := strings.Cut(strings.Trim(seg.Raw, "{}"), ":")
		return ref
	}
	return strconv.Itoa(seg.Ref.Index)
}
